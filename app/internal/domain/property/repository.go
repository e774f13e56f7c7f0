package property

import "context"

// Order is the sort applied by Repository.Find.
type Order int

const (
	// OrderNatural sorts by primary key.
	OrderNatural Order = iota
	// OrderNewest sorts by created_at DESC, id DESC.
	OrderNewest
)

type Query struct {
	Predicates []Predicate
	Order      Order
	// Limit caps the result; 0 means no cap.
	Limit int
}

type Repository interface {
	Create(ctx context.Context, p *Property) (*Property, error)
	Update(ctx context.Context, p *Property) (*Property, error)
	GetByID(ctx context.Context, id int64) (*Property, error)
	GetBySlug(ctx context.Context, slug string) (*Property, error)
	Find(ctx context.Context, q Query) ([]*Property, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}
