package dims

import "errors"

// Sentinel errors for dimension model construction and index computation.
var (
	// ErrMalformedCalendar indicates a season calendar that violates its
	// construction invariants (wrong number of per-year entries, a year
	// with no seasons, or an offset outside (0,1]).
	ErrMalformedCalendar = errors.New("dims: malformed season calendar")
	// ErrIndexOutOfRange indicates a year, season, or age argument outside
	// the model's declared extents.
	ErrIndexOutOfRange = errors.New("dims: index out of range")
	// ErrBadExtent indicates a non-positive dimension extent at construction.
	ErrBadExtent = errors.New("dims: dimension extents must be positive")
)
