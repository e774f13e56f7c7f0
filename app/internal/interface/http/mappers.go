package http

import (
	dommsg "example.com/property-listing/app/internal/domain/message"
	domprofile "example.com/property-listing/app/internal/domain/profile"
	domproperty "example.com/property-listing/app/internal/domain/property"
	domuser "example.com/property-listing/app/internal/domain/user"
)

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
}

func mapProperty(p *domproperty.Property) map[string]any {
	return map[string]any{
		"id":              p.ID,
		"user_id":         p.UserID,
		"title":           p.Title,
		"slug":            p.Slug,
		"description":     p.Description,
		"type":            p.Type,
		"city":            p.City,
		"address":         p.Address,
		"bedrooms":        p.Bedrooms,
		"bathrooms":       p.Bathrooms,
		"price":           p.Price,
		"property_status": p.PropertyStatus,
		"status":          p.Status,
		"is_featured":     p.IsFeatured,
		"created_at":      p.CreatedAt,
		"updated_at":      p.UpdatedAt,
	}
}

func mapProperties(items []*domproperty.Property) []map[string]any {
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, mapProperty(p))
	}
	return resp
}

func mapProfileInformation(p *domprofile.Profile) map[string]any {
	return map[string]any{
		"user_id": p.UserID,
		"phone":   p.Phone,
		"bio":     p.Bio,
		"address": p.Address,
		"city":    p.City,
		"country": p.Country,
		"website": p.Website,
	}
}

func mapSocialMedia(p *domprofile.Profile) map[string]any {
	return map[string]any{
		"user_id":   p.UserID,
		"facebook":  p.Social.Facebook,
		"twitter":   p.Social.Twitter,
		"instagram": p.Social.Instagram,
		"linkedin":  p.Social.LinkedIn,
	}
}

func mapMessage(m *dommsg.Message) map[string]any {
	return map[string]any{
		"id":           m.ID,
		"property_id":  m.PropertyID,
		"sender_id":    m.SenderID,
		"recipient_id": m.RecipientID,
		"parent_id":    m.ParentID,
		"thread_id":    m.ThreadID(),
		"body":         m.Body,
		"created_at":   m.CreatedAt,
	}
}
