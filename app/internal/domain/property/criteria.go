package property

import "strings"

// Field names a filterable property attribute. Values match the storage column names.
type Field string

const (
	FieldUserID         Field = "user_id"
	FieldTitle          Field = "title"
	FieldType           Field = "type"
	FieldCity           Field = "city"
	FieldBedrooms       Field = "bedrooms"
	FieldPrice          Field = "price"
	FieldPropertyStatus Field = "property_status"
	FieldStatus         Field = "status"
	FieldIsFeatured     Field = "is_featured"
)

type Operator int

const (
	OpEq Operator = iota
	OpIn
	OpLte
	OpContains
)

func (o Operator) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpIn:
		return "in"
	case OpLte:
		return "lte"
	case OpContains:
		return "contains"
	}
	return "unknown"
}

// Predicate is a single boolean condition over a Property.
// Value is a string, []string, int, int64, float64 or bool depending on Field and Op.
type Predicate struct {
	Field Field
	Op    Operator
	Value any
}

func Published() Predicate {
	return Predicate{Field: FieldPropertyStatus, Op: OpEq, Value: string(StatusPublished)}
}

func Featured() Predicate {
	return Predicate{Field: FieldIsFeatured, Op: OpEq, Value: true}
}

func OfType(t string) Predicate {
	return Predicate{Field: FieldType, Op: OpEq, Value: t}
}

func OwnedBy(userID int64) Predicate {
	return Predicate{Field: FieldUserID, Op: OpEq, Value: userID}
}

// Criteria holds the optional inputs of a property search. Zero values mean "no constraint".
type Criteria struct {
	Search        string
	PropertyTypes []string
	City          string
	Cities        []string
	MaxBedrooms   *int
	MaxPrice      *float64
	Status        string
}

// Predicates returns the published predicate followed by one predicate per present criterion.
func (c Criteria) Predicates() []Predicate {
	preds := []Predicate{Published()}

	if s := strings.TrimSpace(c.Search); s != "" {
		preds = append(preds, Predicate{Field: FieldTitle, Op: OpContains, Value: s})
	}
	if types := compact(c.PropertyTypes); len(types) > 0 {
		preds = append(preds, Predicate{Field: FieldType, Op: OpIn, Value: types})
	}
	if city := strings.TrimSpace(c.City); city != "" {
		preds = append(preds, Predicate{Field: FieldCity, Op: OpEq, Value: city})
	}
	if cities := compact(c.Cities); len(cities) > 0 {
		preds = append(preds, Predicate{Field: FieldCity, Op: OpIn, Value: cities})
	}
	if c.MaxBedrooms != nil {
		preds = append(preds, Predicate{Field: FieldBedrooms, Op: OpLte, Value: *c.MaxBedrooms})
	}
	if c.MaxPrice != nil {
		preds = append(preds, Predicate{Field: FieldPrice, Op: OpLte, Value: *c.MaxPrice})
	}
	if status := strings.TrimSpace(c.Status); status != "" {
		preds = append(preds, Predicate{Field: FieldStatus, Op: OpEq, Value: status})
	}
	return preds
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Matches evaluates the predicate against p in memory.
// Contains is case-insensitive to mirror the SQL stores.
func (pr Predicate) Matches(p *Property) bool {
	got, ok := fieldValue(p, pr.Field)
	if !ok {
		return false
	}

	switch pr.Op {
	case OpEq:
		return equalValues(got, pr.Value)
	case OpIn:
		list, ok := pr.Value.([]string)
		if !ok {
			return false
		}
		s, ok := got.(string)
		if !ok {
			return false
		}
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	case OpLte:
		a, okA := toFloat(got)
		b, okB := toFloat(pr.Value)
		return okA && okB && a <= b
	case OpContains:
		s, okS := got.(string)
		sub, okSub := pr.Value.(string)
		return okS && okSub && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	return false
}

// MatchAll reports whether p satisfies every predicate.
func MatchAll(p *Property, preds []Predicate) bool {
	for _, pr := range preds {
		if !pr.Matches(p) {
			return false
		}
	}
	return true
}

func fieldValue(p *Property, f Field) (any, bool) {
	switch f {
	case FieldUserID:
		return p.UserID, true
	case FieldTitle:
		return p.Title, true
	case FieldType:
		return p.Type, true
	case FieldCity:
		return p.City, true
	case FieldBedrooms:
		return p.Bedrooms, true
	case FieldPrice:
		return p.Price, true
	case FieldPropertyStatus:
		return string(p.PropertyStatus), true
	case FieldStatus:
		return p.Status, true
	case FieldIsFeatured:
		return p.IsFeatured, true
	}
	return nil, false
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
