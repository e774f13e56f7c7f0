package property

import "errors"

var (
	ErrPropertyNotFound  = errors.New("property not found")
	ErrForbidden         = errors.New("you are not allowed to modify this property")
	ErrInvalidLimit      = errors.New("limit must be greater than 0")
	ErrInvalidStatus     = errors.New("invalid property status")
	ErrSlugExhausted     = errors.New("could not allocate a unique slug")
	ErrSlugTaken         = errors.New("slug already taken")
	ErrUnsupportedFilter = errors.New("unsupported filter predicate")
)
