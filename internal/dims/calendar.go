// Package dims maps the multi-dimensional simulation space — year, season,
// age — onto flat storage. A Calendar describes how many seasons each year
// has; a Model folds (year, season, age) coordinates into dense array
// offsets and gives each owning entity a unique id.
package dims

import "fmt"

// Calendar defines the per-year season structure of a simulation.
// A calendar is either uniform (one season count applied to every year) or
// variable (an explicit ordered list of season-boundary offsets per year,
// values in (0,1]). Immutable once built.
type Calendar struct {
	nyears     int
	uniform    int         // season count when uniform, 0 when variable
	offsets    [][]float64 // per-year boundary offsets when variable
	maxSeasons int
}

// Uniform builds a calendar where every year has the same number of
// seasons. The boundary offset of season j is (j+1)/nseasons.
func Uniform(nyears, nseasons int) (Calendar, error) {
	if nyears < 1 {
		return Calendar{}, fmt.Errorf("%w: nyears=%d", ErrBadExtent, nyears)
	}
	if nseasons < 1 {
		return Calendar{}, fmt.Errorf("%w: year has %d seasons", ErrMalformedCalendar, nseasons)
	}
	return Calendar{
		nyears:     nyears,
		uniform:    nseasons,
		maxSeasons: nseasons,
	}, nil
}

// Variable builds a data-driven calendar from explicit per-year
// season-boundary offsets. Exactly nyears entries are required and every
// year must define at least one season. Offsets are boundary positions
// within the year and must lie in (0,1]; ordering within a year is the
// caller's convention and is not enforced.
func Variable(nyears int, offsets [][]float64) (Calendar, error) {
	if nyears < 1 {
		return Calendar{}, fmt.Errorf("%w: nyears=%d", ErrBadExtent, nyears)
	}
	if len(offsets) != nyears {
		return Calendar{}, fmt.Errorf("%w: %d per-year entries for %d years",
			ErrMalformedCalendar, len(offsets), nyears)
	}
	maxSeasons := 0
	cp := make([][]float64, nyears)
	for y, yearOffsets := range offsets {
		if len(yearOffsets) == 0 {
			return Calendar{}, fmt.Errorf("%w: year %d has no seasons", ErrMalformedCalendar, y)
		}
		for _, off := range yearOffsets {
			if off <= 0 || off > 1 {
				return Calendar{}, fmt.Errorf("%w: year %d offset %g outside (0,1]",
					ErrMalformedCalendar, y, off)
			}
		}
		cp[y] = append([]float64(nil), yearOffsets...)
		if len(yearOffsets) > maxSeasons {
			maxSeasons = len(yearOffsets)
		}
	}
	return Calendar{
		nyears:     nyears,
		offsets:    cp,
		maxSeasons: maxSeasons,
	}, nil
}

// Years returns the number of years the calendar covers.
func (c Calendar) Years() int { return c.nyears }

// MaxSeasons returns the maximum season count across all years. This is
// the season extent of any dense storage sized to the calendar.
func (c Calendar) MaxSeasons() int { return c.maxSeasons }

// SeasonsIn returns the number of seasons defined for the given year.
func (c Calendar) SeasonsIn(year int) (int, error) {
	if year < 0 || year >= c.nyears {
		return 0, fmt.Errorf("%w: year %d of %d", ErrIndexOutOfRange, year, c.nyears)
	}
	if c.uniform > 0 {
		return c.uniform, nil
	}
	return len(c.offsets[year]), nil
}

// Offsets returns the season-boundary offsets for the given year. Uniform
// calendars synthesize offsets (j+1)/nseasons; variable calendars return a
// copy of the year's entry.
func (c Calendar) Offsets(year int) ([]float64, error) {
	if year < 0 || year >= c.nyears {
		return nil, fmt.Errorf("%w: year %d of %d", ErrIndexOutOfRange, year, c.nyears)
	}
	if c.uniform > 0 {
		out := make([]float64, c.uniform)
		for j := range out {
			out[j] = float64(j+1) / float64(c.uniform)
		}
		return out, nil
	}
	return append([]float64(nil), c.offsets[year]...), nil
}
