package property

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	dom "example.com/property-listing/app/internal/domain/property"
)

const (
	maxSlugAttempts = 50
	// maxSaveAttempts bounds retries when a concurrent writer claims the same slug.
	maxSaveAttempts = 3
)

// ListingCache stores the public featured/latest listings between writes.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]*dom.Property, bool, error)
	Set(ctx context.Context, key string, items []*dom.Property) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo  dom.Repository
	cache ListingCache
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Service)

func WithCache(c ListingCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo dom.Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  zap.NewNop(),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input carries the editable fields of a property.
type Input struct {
	Title          string
	Description    string
	Type           string
	City           string
	Address        string
	Bedrooms       int
	Bathrooms      int
	Price          float64
	PropertyStatus dom.PublishStatus
	Status         string
	IsFeatured     bool
}

func (s *Service) Filter(ctx context.Context, c dom.Criteria) ([]*dom.Property, error) {
	return s.repo.Find(ctx, dom.Query{
		Predicates: c.Predicates(),
		Order:      dom.OrderNatural,
	})
}

func (s *Service) Featured(ctx context.Context, limit int) ([]*dom.Property, error) {
	if limit < 1 {
		return nil, dom.ErrInvalidLimit
	}
	return s.cached(ctx, fmt.Sprintf("featured:%d", limit), dom.Query{
		Predicates: []dom.Predicate{dom.Published(), dom.Featured()},
		Order:      dom.OrderNewest,
		Limit:      limit,
	})
}

func (s *Service) Latest(ctx context.Context, limit int) ([]*dom.Property, error) {
	if limit < 1 {
		return nil, dom.ErrInvalidLimit
	}
	return s.cached(ctx, fmt.Sprintf("latest:%d", limit), dom.Query{
		Predicates: []dom.Predicate{dom.Published()},
		Order:      dom.OrderNewest,
		Limit:      limit,
	})
}

func (s *Service) ByType(ctx context.Context, propertyType string) ([]*dom.Property, error) {
	return s.repo.Find(ctx, dom.Query{
		Predicates: []dom.Predicate{dom.Published(), dom.OfType(strings.TrimSpace(propertyType))},
		Order:      dom.OrderNewest,
	})
}

// FindBySlug reports found=false for an unknown slug instead of an error.
func (s *Service) FindBySlug(ctx context.Context, slug string) (*dom.Property, bool, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, dom.ErrPropertyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return p, true, nil
}

func (s *Service) UserProperties(ctx context.Context, userID int64) ([]*dom.Property, error) {
	return s.repo.Find(ctx, dom.Query{
		Predicates: []dom.Predicate{dom.OwnedBy(userID)},
		Order:      dom.OrderNewest,
	})
}

func (s *Service) GetForEdit(ctx context.Context, actorID, id int64) (*dom.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !dom.CanEdit(actorID, p) {
		return nil, dom.ErrForbidden
	}
	return p, nil
}

// CreateOrUpdate creates a property owned by actorID when id is nil, otherwise
// updates the existing one after checking ownership. created reports which happened.
func (s *Service) CreateOrUpdate(ctx context.Context, actorID int64, id *int64, in Input) (*dom.Property, bool, error) {
	if in.PropertyStatus != "" && !in.PropertyStatus.IsValid() {
		return nil, false, dom.ErrInvalidStatus
	}

	if id == nil {
		p, err := s.create(ctx, actorID, in)
		if err != nil {
			return nil, false, err
		}
		s.invalidate(ctx)
		return p, true, nil
	}

	existed, err := s.repo.GetByID(ctx, *id)
	if err != nil {
		return nil, false, err
	}
	if !dom.CanEdit(actorID, existed) {
		return nil, false, dom.ErrForbidden
	}

	retitled := strings.TrimSpace(in.Title) != existed.Title
	apply(existed, in)
	if in.PropertyStatus != "" {
		existed.PropertyStatus = in.PropertyStatus
	}
	existed.UpdatedAt = s.now()

	var updated *dom.Property
	for attempt := 1; ; attempt++ {
		if retitled {
			slug, err := s.uniqueSlug(ctx, existed.Title, existed.ID)
			if err != nil {
				return nil, false, err
			}
			existed.Slug = slug
		}
		updated, err = s.repo.Update(ctx, existed)
		if !retitled || !errors.Is(err, dom.ErrSlugTaken) || attempt == maxSaveAttempts {
			break
		}
		s.log.Debug("slug claimed concurrently, retrying", zap.String("slug", existed.Slug))
	}
	if err != nil {
		return nil, false, err
	}
	s.invalidate(ctx)
	return updated, false, nil
}

func (s *Service) create(ctx context.Context, actorID int64, in Input) (*dom.Property, error) {
	now := s.now()
	p := &dom.Property{
		UserID:         actorID,
		PropertyStatus: dom.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	apply(p, in)
	if in.PropertyStatus != "" {
		p.PropertyStatus = in.PropertyStatus
	}

	for attempt := 1; ; attempt++ {
		slug, err := s.uniqueSlug(ctx, p.Title, 0)
		if err != nil {
			return nil, err
		}
		p.Slug = slug

		created, err := s.repo.Create(ctx, p)
		if errors.Is(err, dom.ErrSlugTaken) && attempt < maxSaveAttempts {
			s.log.Debug("slug claimed concurrently, retrying", zap.String("slug", slug))
			continue
		}
		return created, err
	}
}

func apply(p *dom.Property, in Input) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.Type = strings.TrimSpace(in.Type)
	p.City = strings.TrimSpace(in.City)
	p.Address = in.Address
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.Price = in.Price
	p.Status = strings.TrimSpace(in.Status)
	p.IsFeatured = in.IsFeatured
}

func (s *Service) uniqueSlug(ctx context.Context, title string, excludeID int64) (string, error) {
	base := dom.Slugify(title)
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := dom.SlugCandidate(base, n)
		exists, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", dom.ErrSlugExhausted
}

func (s *Service) cached(ctx context.Context, key string, q dom.Query) ([]*dom.Property, error) {
	if s.cache != nil {
		items, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("listing cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return items, nil
		}
	}

	items, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items); err != nil {
			s.log.Warn("listing cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("listing cache invalidation failed", zap.Error(err))
	}
}
