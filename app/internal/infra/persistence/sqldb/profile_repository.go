package sqldb

import (
	"context"
	"database/sql"
	"errors"

	domprofile "example.com/property-listing/app/internal/domain/profile"
)

var profileUpdatable = []string{
	"phone", "bio", "address", "city", "country", "website",
	"facebook", "twitter", "instagram", "linkedin", "updated_at",
}

type ProfileRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewProfileRepository(db *sql.DB, d Dialect) *ProfileRepository {
	return &ProfileRepository{db: db, dialect: d}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domprofile.Profile, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`
        SELECT user_id, phone, bio, address, city, country, website,
            facebook, twitter, instagram, linkedin, updated_at
        FROM profiles WHERE user_id = ?`), userID)

	var p domprofile.Profile
	if err := row.Scan(
		&p.UserID, &p.Phone, &p.Bio, &p.Address, &p.City, &p.Country, &p.Website,
		&p.Social.Facebook, &p.Social.Twitter, &p.Social.Instagram, &p.Social.LinkedIn, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domprofile.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save inserts the profile or overwrites the existing row for the same user.
func (r *ProfileRepository) Save(ctx context.Context, p *domprofile.Profile) (*domprofile.Profile, error) {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(`
        INSERT INTO profiles (user_id, phone, bio, address, city, country, website,
            facebook, twitter, instagram, linkedin, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) `+r.dialect.upsert("user_id", profileUpdatable)),
		p.UserID, p.Phone, p.Bio, p.Address, p.City, p.Country, p.Website,
		p.Social.Facebook, p.Social.Twitter, p.Social.Instagram, p.Social.LinkedIn, p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
