package dims

import "fmt"

// Age-step expansion: turning an age range into the fractional age labels
// a seasonal model tracks. Two forms exist, mirroring the season calendar
// modes: a uniform expansion with one step per season, and a data-driven
// expansion keyed to each year's season offsets.

// UniformAgeSteps expands [first, last) into fractional age steps with
// increment 1/nseasons. The terminal age is excluded, matching a cohort
// that ages out at last.
func UniformAgeSteps(first, last float64, nseasons int) ([]float64, error) {
	if nseasons < 1 {
		return nil, fmt.Errorf("%w: nseasons=%d", ErrBadExtent, nseasons)
	}
	if last <= first {
		return nil, fmt.Errorf("%w: age range [%g, %g)", ErrBadExtent, first, last)
	}
	inc := 1.0 / float64(nseasons)
	var steps []float64
	for age := first; age < last; age += inc {
		steps = append(steps, age)
	}
	return steps, nil
}

// AgeSteps expands [first, last] into per-year fractional age grids driven
// by the calendar's season offsets: each integer age contributes itself
// plus one step per season boundary, and the terminal age closes the grid.
// Years of a variable calendar with different season counts produce grids
// of different lengths.
func (c Calendar) AgeSteps(first, last float64) (map[int][]float64, error) {
	if last <= first {
		return nil, fmt.Errorf("%w: age range [%g, %g]", ErrBadExtent, first, last)
	}
	grids := make(map[int][]float64, c.nyears)
	for year := 0; year < c.nyears; year++ {
		offsets, err := c.Offsets(year)
		if err != nil {
			return nil, err
		}
		var ages []float64
		for a := first; a < last; a++ {
			ages = append(ages, a)
			for _, off := range offsets {
				// A boundary at 1.0 coincides with the next integer age.
				if off < 1 && a+off < last {
					ages = append(ages, a+off)
				}
			}
		}
		ages = append(ages, last)
		grids[year] = ages
	}
	return grids, nil
}
