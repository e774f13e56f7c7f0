package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	domproperty "example.com/property-listing/app/internal/domain/property"
	propertyuc "example.com/property-listing/app/internal/usecase/property"
)

type propertyRequest struct {
	Title          string  `json:"title" validate:"required,max=255"`
	Description    string  `json:"description" validate:"max=10000"`
	Type           string  `json:"type" validate:"required,max=64"`
	City           string  `json:"city" validate:"required,max=128"`
	Address        string  `json:"address" validate:"max=255"`
	Bedrooms       int     `json:"bedrooms" validate:"gte=0,lte=1000"`
	Bathrooms      int     `json:"bathrooms" validate:"gte=0,lte=1000"`
	Price          float64 `json:"price" validate:"gte=0"`
	PropertyStatus string  `json:"property_status" validate:"omitempty,oneof=draft published"`
	Status         string  `json:"status" validate:"max=32"`
	IsFeatured     bool    `json:"is_featured"`
}

func (a *API) handleFilterProperties(w http.ResponseWriter, r *http.Request) {
	c, details := parseCriteria(r)
	if len(details) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errValidationFailed.Error(), Details: details})
		return
	}

	properties, err := a.propertySvc.Filter(r.Context(), c)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProperties(properties)})
}

func (a *API) handleFeaturedProperties(w http.ResponseWriter, r *http.Request) {
	limit, ok := a.parseLimit(w, r)
	if !ok {
		return
	}
	properties, err := a.propertySvc.Featured(r.Context(), limit)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProperties(properties)})
}

func (a *API) handleLatestProperties(w http.ResponseWriter, r *http.Request) {
	limit, ok := a.parseLimit(w, r)
	if !ok {
		return
	}
	properties, err := a.propertySvc.Latest(r.Context(), limit)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProperties(properties)})
}

func (a *API) handlePropertiesByType(w http.ResponseWriter, r *http.Request) {
	properties, err := a.propertySvc.ByType(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProperties(properties)})
}

func (a *API) handleShowProperty(w http.ResponseWriter, r *http.Request) {
	p, found, err := a.propertySvc.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, domproperty.ErrPropertyNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapProperty(p))
}

func (a *API) handleCreateOrUpdateProperty(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	var id *int64
	if raw := chi.URLParam(r, "id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		id = &parsed
	}

	var req propertyRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	p, created, err := a.propertySvc.CreateOrUpdate(r.Context(), user.UserID, id, propertyuc.Input{
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		City:           req.City,
		Address:        req.Address,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		Price:          req.Price,
		PropertyStatus: domproperty.PublishStatus(req.PropertyStatus),
		Status:         req.Status,
		IsFeatured:     req.IsFeatured,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, mapProperty(p))
}

func (a *API) handleEditProperty(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	id, err := parseIDParam(r, "property")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	p, err := a.propertySvc.GetForEdit(r.Context(), user.UserID, id)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProperty(p))
}

func (a *API) handleUserProperties(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	properties, err := a.propertySvc.UserProperties(r.Context(), user.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": mapProperties(properties)})
}

// parseLimit reads ?limit=, falling back to the default and capping at the maximum.
func (a *API) parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return a.limits.Default, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   errValidationFailed.Error(),
			Details: map[string]string{"limit": "integer"},
		})
		return 0, false
	}
	if limit > a.limits.Max {
		limit = a.limits.Max
	}
	return limit, true
}

// parseCriteria maps query parameters onto Criteria and reports malformed ones per field.
// Ceilings that are empty, "any" or not positive mean "no constraint".
func parseCriteria(r *http.Request) (domproperty.Criteria, map[string]string) {
	q := r.URL.Query()
	c := domproperty.Criteria{
		Search:        q.Get("search"),
		PropertyTypes: listParam(q["types"]),
		City:          q.Get("city"),
		Cities:        listParam(q["cities"]),
		Status:        q.Get("status"),
	}
	details := map[string]string{}

	if raw, ok := ceilingParam(q.Get("max_bedrooms")); ok {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			details["max_bedrooms"] = "integer"
		case n > 0:
			c.MaxBedrooms = &n
		}
	}
	if raw, ok := ceilingParam(q.Get("max_price")); ok {
		f, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			details["max_price"] = "numeric"
		case f > 0:
			c.MaxPrice = &f
		}
	}

	return c, details
}

func ceilingParam(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "any") {
		return "", false
	}
	return raw, true
}

// listParam accepts both ?types=a,b and ?types=a&types=b.
func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
