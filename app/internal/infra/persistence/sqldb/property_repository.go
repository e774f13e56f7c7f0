package sqldb

import (
	"context"
	"database/sql"
	"errors"

	domproperty "example.com/property-listing/app/internal/domain/property"
)

const propertyColumns = "id, user_id, title, slug, description, type, city, address, bedrooms, bathrooms, price, property_status, status, is_featured, created_at, updated_at"

type PropertyRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewPropertyRepository(db *sql.DB, d Dialect) *PropertyRepository {
	return &PropertyRepository{db: db, dialect: d}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*domproperty.Property, error) {
	var (
		p      domproperty.Property
		status string
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Slug, &p.Description, &p.Type, &p.City, &p.Address,
		&p.Bedrooms, &p.Bathrooms, &p.Price, &status, &p.Status, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.PropertyStatus = domproperty.PublishStatus(status)
	return &p, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domproperty.Property) (*domproperty.Property, error) {
	id, err := r.dialect.insert(ctx, r.db, `
        INSERT INTO properties (user_id, title, slug, description, type, city, address, bedrooms, bathrooms,
            price, property_status, status, is_featured, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Title, p.Slug, p.Description, p.Type, p.City, p.Address, p.Bedrooms, p.Bathrooms,
		p.Price, string(p.PropertyStatus), p.Status, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, domproperty.ErrSlugTaken
		}
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domproperty.Property) (*domproperty.Property, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`
        UPDATE properties
        SET title = ?, slug = ?, description = ?, type = ?, city = ?, address = ?, bedrooms = ?, bathrooms = ?,
            price = ?, property_status = ?, status = ?, is_featured = ?, updated_at = ?
        WHERE id = ?`),
		p.Title, p.Slug, p.Description, p.Type, p.City, p.Address, p.Bedrooms, p.Bathrooms,
		p.Price, string(p.PropertyStatus), p.Status, p.IsFeatured, p.UpdatedAt, p.ID,
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, domproperty.ErrSlugTaken
		}
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domproperty.ErrPropertyNotFound
	}
	return p, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domproperty.Property, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+propertyColumns+" FROM properties WHERE id = ?"), id)
	return r.scanOne(row)
}

func (r *PropertyRepository) GetBySlug(ctx context.Context, slug string) (*domproperty.Property, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+propertyColumns+" FROM properties WHERE slug = ?"), slug)
	return r.scanOne(row)
}

func (r *PropertyRepository) scanOne(row *sql.Row) (*domproperty.Property, error) {
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproperty.ErrPropertyNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepository) Find(ctx context.Context, q domproperty.Query) ([]*domproperty.Property, error) {
	query, args, err := newQueryBuilder(r.dialect).build(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []*domproperty.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT COUNT(*) FROM properties WHERE slug = ? AND id <> ?"), slug, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
