package sqldb

import (
	"fmt"
	"strings"

	domproperty "example.com/property-listing/app/internal/domain/property"
)

// filterColumns whitelists the columns a predicate may reference.
var filterColumns = map[domproperty.Field]string{
	domproperty.FieldUserID:         "user_id",
	domproperty.FieldTitle:          "title",
	domproperty.FieldType:           "type",
	domproperty.FieldCity:           "city",
	domproperty.FieldBedrooms:       "bedrooms",
	domproperty.FieldPrice:          "price",
	domproperty.FieldPropertyStatus: "property_status",
	domproperty.FieldStatus:         "status",
	domproperty.FieldIsFeatured:     "is_featured",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type queryBuilder struct {
	dialect    Dialect
	conditions []string
	args       []any
}

func newQueryBuilder(d Dialect) *queryBuilder {
	return &queryBuilder{dialect: d}
}

func (qb *queryBuilder) add(p domproperty.Predicate) error {
	col, ok := filterColumns[p.Field]
	if !ok {
		return fmt.Errorf("%w: field %q", domproperty.ErrUnsupportedFilter, p.Field)
	}

	switch p.Op {
	case domproperty.OpEq:
		qb.conditions = append(qb.conditions, col+" = ?")
		qb.args = append(qb.args, p.Value)
	case domproperty.OpLte:
		qb.conditions = append(qb.conditions, col+" <= ?")
		qb.args = append(qb.args, p.Value)
	case domproperty.OpIn:
		values, ok := p.Value.([]string)
		if !ok || len(values) == 0 {
			return fmt.Errorf("%w: %s on %q needs a non-empty list", domproperty.ErrUnsupportedFilter, p.Op, p.Field)
		}
		qb.conditions = append(qb.conditions, col+" IN (?"+strings.Repeat(", ?", len(values)-1)+")")
		for _, v := range values {
			qb.args = append(qb.args, v)
		}
	case domproperty.OpContains:
		s, ok := p.Value.(string)
		if !ok {
			return fmt.Errorf("%w: %s on %q needs a string", domproperty.ErrUnsupportedFilter, p.Op, p.Field)
		}
		// backslash is the default LIKE escape in both dialects
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s %s ?", col, qb.dialect.like()))
		qb.args = append(qb.args, "%"+likeEscaper.Replace(s)+"%")
	default:
		return fmt.Errorf("%w: operator %s", domproperty.ErrUnsupportedFilter, p.Op)
	}
	return nil
}

// build renders the full SELECT for q.
func (qb *queryBuilder) build(q domproperty.Query) (string, []any, error) {
	for _, p := range q.Predicates {
		if err := qb.add(p); err != nil {
			return "", nil, err
		}
	}

	query := "SELECT " + propertyColumns + " FROM properties"
	if len(qb.conditions) > 0 {
		query += " WHERE " + strings.Join(qb.conditions, " AND ")
	}

	switch q.Order {
	case domproperty.OrderNewest:
		query += " ORDER BY created_at DESC, id DESC"
	default:
		query += " ORDER BY id ASC"
	}

	if q.Limit > 0 {
		query += " LIMIT ?"
		qb.args = append(qb.args, q.Limit)
	}
	return qb.dialect.Rebind(query), qb.args, nil
}
