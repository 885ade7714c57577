package pop

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/talgya/popsim/internal/dims"
)

// Subpopulation is one partition cell of the sex × area grid. It owns a
// dense derived-quantity array covering every (year, season, age) cell of
// its dimension model and references the Area backing it. Subpopulations
// are created by Population.Initialize and exclusively owned by their
// Population; the Area reference is non-owning.
type Subpopulation struct {
	Base
	area       *Area
	quantities []float64
}

func newSubpopulation(cal dims.Calendar, ages []float64, area *Area, seq *dims.Sequence) (*Subpopulation, error) {
	base, err := newBase(cal, ages, seq)
	if err != nil {
		return nil, err
	}
	return &Subpopulation{
		Base:       base,
		area:       area,
		quantities: make([]float64, base.model.GridSize()),
	}, nil
}

// Area returns the area backing this partition cell.
func (s *Subpopulation) Area() *Area { return s.area }

// CalculateCell runs the placeholder life-history calculation for one
// cell: it stores the flat index itself. Real calculations are supplied
// per evaluation as a CellFunc; see Population.EvaluateWith.
func (s *Subpopulation) CalculateCell(index int) error {
	return s.SetCell(index, float64(index))
}

// SetCell writes the derived quantity at the given flat index.
func (s *Subpopulation) SetCell(index int, v float64) error {
	if index < 0 || index >= len(s.quantities) {
		return fmt.Errorf("%w: cell %d of %d", dims.ErrIndexOutOfRange, index, len(s.quantities))
	}
	s.quantities[index] = v
	return nil
}

// Quantity reads the derived quantity at the given flat index.
func (s *Subpopulation) Quantity(index int) (float64, error) {
	if index < 0 || index >= len(s.quantities) {
		return 0, fmt.Errorf("%w: cell %d of %d", dims.ErrIndexOutOfRange, index, len(s.quantities))
	}
	return s.quantities[index], nil
}

// Quantities returns a copy of the full derived-quantity array.
func (s *Subpopulation) Quantities() []float64 {
	return append([]float64(nil), s.quantities...)
}

// WriteReport emits the subpopulation's derived quantities: a header line
// with the entity id, then one line per (year, season) of space-separated
// values, one per age class. Seasons are bounded by the calendar's
// per-year count, so the padding slots of a variable calendar never
// appear. Read-only and safe to call repeatedly.
func (s *Subpopulation) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "subpopulation %d\n", s.ID()); err != nil {
		return err
	}
	m := s.model
	for year := 0; year < m.Years(); year++ {
		nseasons, err := m.SeasonsIn(year)
		if err != nil {
			return err
		}
		for season := 0; season < nseasons; season++ {
			fields := make([]string, m.Ages())
			for age := 0; age < m.Ages(); age++ {
				idx, err := m.Index(year, season, age)
				if err != nil {
					return err
				}
				fields[age] = strconv.FormatFloat(s.quantities[idx], 'g', -1, 64)
			}
			if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}
