// Package pop organizes a simulated population into partition cells. A
// Population owns one Subpopulation per (sex, area) pair; each
// Subpopulation holds a dense derived-quantity array sized by its
// dimension model and a non-owning reference to the Area backing it.
// Lifecycle: build → Initialize → Evaluate → Finalize, strictly in order.
package pop

import "github.com/talgya/popsim/internal/dims"

// Area is a spatial or management unit. It is a pure wrapper around a
// dimension model: identity plus extents, no further state. Areas are
// shared read-only across the subpopulations they back; the caller that
// created them holds ownership.
type Area struct {
	model *dims.Model
}

// NewArea builds an Area over the given calendar and age extent.
func NewArea(cal dims.Calendar, nages int, seq *dims.Sequence) (*Area, error) {
	m, err := dims.New(cal, nages, seq)
	if err != nil {
		return nil, err
	}
	return &Area{model: m}, nil
}

// ID returns the area's process-unique id.
func (a *Area) ID() uint64 { return a.model.ID() }

// Model returns the area's dimension model.
func (a *Area) Model() *dims.Model { return a.model }
