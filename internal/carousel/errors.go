package carousel

import "errors"

var (
	// ErrInvalidConfiguration is returned at mount or map time when the
	// options cannot drive the wrap math.
	ErrInvalidConfiguration = errors.New("carousel: invalid configuration")

	// ErrMissingCardData is returned when a carousel is mounted with no cards.
	ErrMissingCardData = errors.New("carousel: missing card data")
)
