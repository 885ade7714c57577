package popmath

import "errors"

// Sentinel errors for domain violations. These are programmer errors and
// callers are expected to propagate them, not retry.
var (
	// ErrInvalidArgument indicates an input outside a function's domain
	// (non-positive gamma argument, non-positive standard deviation, ...).
	ErrInvalidArgument = errors.New("popmath: invalid argument")
	// ErrDimensionMismatch indicates paired vectors of unequal length.
	ErrDimensionMismatch = errors.New("popmath: vector lengths differ")
)
