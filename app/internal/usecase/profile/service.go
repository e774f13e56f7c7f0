package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "example.com/property-listing/app/internal/domain/profile"
)

type Service struct {
	repo dom.Repository
	now  func() time.Time
}

func NewService(repo dom.Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type InformationInput struct {
	Phone   string
	Bio     string
	Address string
	City    string
	Country string
	Website string
}

type SocialMediaInput struct {
	Facebook  string
	Twitter   string
	Instagram string
	LinkedIn  string
}

// Get returns the saved profile, or an empty one when the user never saved it.
func (s *Service) Get(ctx context.Context, userID int64) (*dom.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, dom.ErrProfileNotFound) {
			return dom.Empty(userID), nil
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateInformation(ctx context.Context, userID int64, in InformationInput) (*dom.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.Phone = strings.TrimSpace(in.Phone)
	p.Bio = strings.TrimSpace(in.Bio)
	p.Address = strings.TrimSpace(in.Address)
	p.City = strings.TrimSpace(in.City)
	p.Country = strings.TrimSpace(in.Country)
	p.Website = strings.TrimSpace(in.Website)
	p.UpdatedAt = s.now()

	return s.repo.Save(ctx, p)
}

// UpdateSocialMedia replaces all social links; omitted ones are cleared.
func (s *Service) UpdateSocialMedia(ctx context.Context, userID int64, in SocialMediaInput) (*dom.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.Social = dom.SocialMedia{
		Facebook:  strings.TrimSpace(in.Facebook),
		Twitter:   strings.TrimSpace(in.Twitter),
		Instagram: strings.TrimSpace(in.Instagram),
		LinkedIn:  strings.TrimSpace(in.LinkedIn),
	}
	p.UpdatedAt = s.now()

	return s.repo.Save(ctx, p)
}
