package layout

import "errors"

var (
	// ErrRefNotFound is returned when an insert names a reference widget that
	// is not in the layout.
	ErrRefNotFound = errors.New("layout: reference widget is not in the layout")
	// ErrInvalidConfig is returned for layout configs that cannot be decoded.
	ErrInvalidConfig = errors.New("layout: invalid layout config")
	// ErrUnknownWidget is returned when a config names a widget the resolver
	// does not know.
	ErrUnknownWidget = errors.New("layout: unknown widget")
)
