package belt

import "errors"

// Sentinel errors returned by the strict variants. The lenient functions never
// return them; they log a diagnostic and hand back a sentinel value instead.
//
// - ErrNotFound: a named pattern is not registered
// - ErrUnclassifiable: a value fits no Kind (channels, complex numbers, unsafe pointers)
var (
	ErrNotFound       = errors.New("not found")
	ErrUnclassifiable = errors.New("unclassifiable value")
)
