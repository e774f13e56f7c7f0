package property

import "time"

// PublishStatus is the lifecycle flag stored in property_status.
type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusPublished PublishStatus = "published"
)

func (s PublishStatus) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

type Property struct {
	ID             int64
	UserID         int64
	Title          string
	Slug           string
	Description    string
	Type           string
	City           string
	Address        string
	Bedrooms       int
	Bathrooms      int
	Price          float64
	PropertyStatus PublishStatus
	Status         string
	IsFeatured     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Property) IsPublished() bool {
	return p.PropertyStatus == StatusPublished
}
