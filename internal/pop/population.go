package pop

import (
	"fmt"
	"io"

	"github.com/talgya/popsim/internal/dims"
)

// State tracks a Population's position in its lifecycle. Transitions are
// one-directional; every operation requires the state its predecessor
// established.
type State uint8

const (
	StateBuilt State = iota
	StateInitialized
	StateEvaluated
	StateFinalized
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateInitialized:
		return "initialized"
	case StateEvaluated:
		return "evaluated"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Cell identifies one grid cell during evaluation. Index is the folded
// offset into the subpopulation's quantity array; AgeLabel is the opaque
// age-class label at Age.
type Cell struct {
	Sex      int
	Area     int
	Year     int
	Season   int
	Age      int
	Index    int
	AgeLabel float64
}

// CellFunc computes the derived quantity for one cell. Implementations
// must be pure with respect to the grid: the returned value is written to
// exactly the cell's own slot.
type CellFunc func(c Cell) float64

// Population is the aggregate root: it owns the age-class list, shares
// the area list, and holds one Subpopulation per (sex, area) pair, keyed
// by sex and ordered to match the area list.
type Population struct {
	Base
	seq    *dims.Sequence
	nsexes int
	areas  []*Area
	subs   map[int][]*Subpopulation
	state  State
}

// NewPopulation builds a Population over the given calendar and age
// labels. The same sequence is used for every entity the population
// creates.
func NewPopulation(cal dims.Calendar, ages []float64, seq *dims.Sequence) (*Population, error) {
	base, err := newBase(cal, ages, seq)
	if err != nil {
		return nil, err
	}
	return &Population{
		Base:  base,
		seq:   seq,
		subs:  make(map[int][]*Subpopulation),
		state: StateBuilt,
	}, nil
}

// State returns the population's current lifecycle state.
func (p *Population) State() State { return p.state }

// NSexes returns the sex extent set by Initialize.
func (p *Population) NSexes() int { return p.nsexes }

// Areas returns the shared area list set by Initialize.
func (p *Population) Areas() []*Area {
	return append([]*Area(nil), p.areas...)
}

// Subpopulations returns the ordered partition cells for one sex, matching
// the area list order. The returned slice is shared; callers must not
// reorder it.
func (p *Population) Subpopulations(sex int) ([]*Subpopulation, error) {
	if p.state < StateInitialized {
		return nil, fmt.Errorf("%w: subpopulations requested while %s", ErrInvalidState, p.state)
	}
	if sex < 0 || sex >= p.nsexes {
		return nil, fmt.Errorf("%w: sex %d of %d", dims.ErrIndexOutOfRange, sex, p.nsexes)
	}
	return p.subs[sex], nil
}

// Initialize builds the sex × area grid: one Subpopulation per pair, each
// sized by the population's own dimension model and linked to its area.
// Must be called exactly once, before Evaluate.
func (p *Population) Initialize(nsexes int, areas []*Area) error {
	if p.state != StateBuilt {
		return fmt.Errorf("%w: initialize while %s", ErrInvalidState, p.state)
	}
	if nsexes < 1 {
		return ErrNoSexes
	}
	if len(areas) == 0 {
		return ErrNoAreas
	}

	p.nsexes = nsexes
	p.areas = append([]*Area(nil), areas...)

	for sex := 0; sex < nsexes; sex++ {
		cells := make([]*Subpopulation, 0, len(areas))
		for _, area := range p.areas {
			sub, err := newSubpopulation(p.model.Calendar(), p.ages, area, p.seq)
			if err != nil {
				return fmt.Errorf("build subpopulation: %w", err)
			}
			cells = append(cells, sub)
		}
		p.subs[sex] = cells
	}

	p.state = StateInitialized
	return nil
}

// Evaluate sweeps every (sex, area, year, season, age) cell with the
// placeholder store-the-index calculation.
func (p *Population) Evaluate() error {
	return p.EvaluateWith(nil)
}

// EvaluateWith sweeps the grid applying fn to every cell, in total order:
// sex, area, year, season, age, all ascending, with the season range
// bounded by the calendar's per-year count. A nil fn selects the
// placeholder store-the-index calculation. Requires Initialize; advances
// the lifecycle to Evaluated.
func (p *Population) EvaluateWith(fn CellFunc) error {
	if p.state != StateInitialized {
		return fmt.Errorf("%w: evaluate while %s", ErrInvalidState, p.state)
	}
	for sex := 0; sex < p.nsexes; sex++ {
		for areaIdx, sub := range p.subs[sex] {
			if err := p.evaluatePartition(sex, areaIdx, sub, fn); err != nil {
				return err
			}
		}
	}
	p.state = StateEvaluated
	return nil
}

// evaluatePartition sweeps one subpopulation's full (year, season, age)
// grid. Each cell writes a distinct slot; no cell reads another.
func (p *Population) evaluatePartition(sex, areaIdx int, sub *Subpopulation, fn CellFunc) error {
	m := p.model
	for year := 0; year < m.Years(); year++ {
		nseasons, err := m.SeasonsIn(year)
		if err != nil {
			return err
		}
		for season := 0; season < nseasons; season++ {
			for age := 0; age < m.Ages(); age++ {
				idx, err := m.Index(year, season, age)
				if err != nil {
					return err
				}
				if fn == nil {
					if err := sub.CalculateCell(idx); err != nil {
						return err
					}
					continue
				}
				v := fn(Cell{
					Sex:      sex,
					Area:     areaIdx,
					Year:     year,
					Season:   season,
					Age:      age,
					Index:    idx,
					AgeLabel: p.ages[age],
				})
				if err := sub.SetCell(idx, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Finalize writes every subpopulation's report to w in sex/area order.
// Requires Evaluate; advances the lifecycle to Finalized.
func (p *Population) Finalize(w io.Writer) error {
	if p.state != StateEvaluated {
		return fmt.Errorf("%w: finalize while %s", ErrInvalidState, p.state)
	}
	for sex := 0; sex < p.nsexes; sex++ {
		for _, sub := range p.subs[sex] {
			if err := sub.WriteReport(w); err != nil {
				return fmt.Errorf("report subpopulation %d: %w", sub.ID(), err)
			}
		}
	}
	p.state = StateFinalized
	return nil
}
