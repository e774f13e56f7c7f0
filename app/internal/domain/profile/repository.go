package profile

import "context"

type Repository interface {
	// GetByUserID returns ErrProfileNotFound when the user has no saved profile.
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Save(ctx context.Context, p *Profile) (*Profile, error)
}
