package pop

import "errors"

// Sentinel errors for population lifecycle and construction.
var (
	// ErrInvalidState indicates a lifecycle operation invoked out of order
	// (evaluate before initialize, finalize before evaluate, and so on).
	ErrInvalidState = errors.New("pop: operation invalid in current lifecycle state")
	// ErrNoAreas indicates Initialize was given an empty area list.
	ErrNoAreas = errors.New("pop: at least one area is required")
	// ErrNoSexes indicates Initialize was given a non-positive sex count.
	ErrNoSexes = errors.New("pop: at least one sex is required")
)
