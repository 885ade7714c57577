package pop_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/popsim/internal/dims"
	"github.com/talgya/popsim/internal/pop"
)

func buildPopulation(t *testing.T, cal dims.Calendar, ages []float64, nsexes, nareas int) *pop.Population {
	t.Helper()
	seq := dims.NewSequence()

	areas := make([]*pop.Area, nareas)
	for i := range areas {
		a, err := pop.NewArea(cal, len(ages), seq)
		require.NoError(t, err)
		areas[i] = a
	}

	p, err := pop.NewPopulation(cal, ages, seq)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(nsexes, areas))
	return p
}

func uniformAges(n int) []float64 {
	ages := make([]float64, n)
	for i := range ages {
		ages[i] = float64(i + 1)
	}
	return ages
}

// TestInitialize_GridShape covers the reference configuration: 30 years,
// 4 seasons, 8 ages, 2 sexes, 3 areas — each sex holds one subpopulation
// per area, ordered to match the area list.
func TestInitialize_GridShape(t *testing.T) {
	cal, err := dims.Uniform(30, 4)
	require.NoError(t, err)

	p := buildPopulation(t, cal, uniformAges(8), 2, 3)
	areas := p.Areas()
	require.Len(t, areas, 3)

	for sex := 0; sex < 2; sex++ {
		subs, err := p.Subpopulations(sex)
		require.NoError(t, err)
		require.Len(t, subs, 3)
		for j, sub := range subs {
			require.Same(t, areas[j], sub.Area(), "sex %d entry %d must be backed by area %d", sex, j, j)
			require.Len(t, sub.Quantities(), 30*4*8)
		}
	}

	_, err = p.Subpopulations(2)
	require.ErrorIs(t, err, dims.ErrIndexOutOfRange)
}

// TestEvaluate_StoresIndex is the regression test for the placeholder
// calculation: every cell's stored value equals its flat index.
func TestEvaluate_StoresIndex(t *testing.T) {
	cal, err := dims.Uniform(3, 2)
	require.NoError(t, err)

	p := buildPopulation(t, cal, uniformAges(4), 2, 2)
	require.NoError(t, p.Evaluate())

	m := p.Model()
	for sex := 0; sex < 2; sex++ {
		subs, err := p.Subpopulations(sex)
		require.NoError(t, err)
		for _, sub := range subs {
			for year := 0; year < m.Years(); year++ {
				nseasons, err := m.SeasonsIn(year)
				require.NoError(t, err)
				for season := 0; season < nseasons; season++ {
					for age := 0; age < m.Ages(); age++ {
						idx, err := m.Index(year, season, age)
						require.NoError(t, err)
						v, err := sub.Quantity(idx)
						require.NoError(t, err)
						require.Equal(t, float64(idx), v)
					}
				}
			}
		}
	}
}

func TestEvaluateWith_Strategy(t *testing.T) {
	cal, err := dims.Uniform(2, 2)
	require.NoError(t, err)

	p := buildPopulation(t, cal, uniformAges(3), 1, 1)
	require.NoError(t, p.EvaluateWith(func(c pop.Cell) float64 {
		return c.AgeLabel * 10
	}))

	subs, err := p.Subpopulations(0)
	require.NoError(t, err)

	m := p.Model()
	idx, err := m.Index(1, 1, 2)
	require.NoError(t, err)
	v, err := subs[0].Quantity(idx)
	require.NoError(t, err)
	require.Equal(t, 30.0, v)
}

// TestEvaluate_VariableCalendar checks that the padding slots of a mixed
// calendar exist but are never visited: year 0's third-season slots stay
// zero after a full sweep.
func TestEvaluate_VariableCalendar(t *testing.T) {
	cal, err := dims.Variable(2, [][]float64{
		{0.5, 1.0},
		{1.0 / 3, 2.0 / 3, 1.0},
	})
	require.NoError(t, err)

	const nages = 4
	p := buildPopulation(t, cal, uniformAges(nages), 1, 1)
	require.NoError(t, p.Evaluate())

	m := p.Model()
	require.Equal(t, 2*3*nages, m.GridSize())

	subs, err := p.Subpopulations(0)
	require.NoError(t, err)
	sub := subs[0]

	// Visited: year 0 season 1 holds its own index.
	idx, err := m.Index(0, 1, 0)
	require.NoError(t, err)
	v, err := sub.Quantity(idx)
	require.NoError(t, err)
	require.Equal(t, float64(idx), v)

	// Padding: year 0 season 2 was never written.
	for age := 0; age < nages; age++ {
		idx, err := m.Index(0, 2, age)
		require.NoError(t, err)
		v, err := sub.Quantity(idx)
		require.NoError(t, err)
		require.Zero(t, v, "padding slot (0,2,%d) must stay untouched", age)
	}
}

// TestEvaluateParallel_MatchesSerial runs the same strategy through both
// sweeps and compares every partition's grid.
func TestEvaluateParallel_MatchesSerial(t *testing.T) {
	cal, err := dims.Variable(3, [][]float64{
		{0.5, 1.0},
		{0.25, 0.5, 0.75, 1.0},
		{1.0},
	})
	require.NoError(t, err)
	ages := uniformAges(5)

	fn := func(c pop.Cell) float64 {
		return float64(c.Sex*1000+c.Area*100) + c.AgeLabel + float64(c.Year)*0.5
	}

	serial := buildPopulation(t, cal, ages, 2, 3)
	require.NoError(t, serial.EvaluateWith(fn))

	parallel := buildPopulation(t, cal, ages, 2, 3)
	require.NoError(t, parallel.EvaluateParallel(fn))

	for sex := 0; sex < 2; sex++ {
		ss, err := serial.Subpopulations(sex)
		require.NoError(t, err)
		ps, err := parallel.Subpopulations(sex)
		require.NoError(t, err)
		for j := range ss {
			require.Equal(t, ss[j].Quantities(), ps[j].Quantities(), "sex %d area %d", sex, j)
		}
	}
}

// TestLifecycle_Ordering exercises the one-directional state machine:
// every operation out of order fails with ErrInvalidState.
func TestLifecycle_Ordering(t *testing.T) {
	cal, err := dims.Uniform(1, 1)
	require.NoError(t, err)
	seq := dims.NewSequence()

	area, err := pop.NewArea(cal, 2, seq)
	require.NoError(t, err)

	p, err := pop.NewPopulation(cal, uniformAges(2), seq)
	require.NoError(t, err)
	require.Equal(t, pop.StateBuilt, p.State())

	// Before initialize.
	require.ErrorIs(t, p.Evaluate(), pop.ErrInvalidState)
	require.ErrorIs(t, p.Finalize(io.Discard), pop.ErrInvalidState)
	_, err = p.Subpopulations(0)
	require.ErrorIs(t, err, pop.ErrInvalidState)

	require.NoError(t, p.Initialize(1, []*pop.Area{area}))
	require.Equal(t, pop.StateInitialized, p.State())

	// Double initialize redefines the grid; rejected.
	require.ErrorIs(t, p.Initialize(1, []*pop.Area{area}), pop.ErrInvalidState)
	// Finalize before evaluate.
	require.ErrorIs(t, p.Finalize(io.Discard), pop.ErrInvalidState)

	require.NoError(t, p.Evaluate())
	require.Equal(t, pop.StateEvaluated, p.State())
	require.ErrorIs(t, p.Evaluate(), pop.ErrInvalidState)

	require.NoError(t, p.Finalize(io.Discard))
	require.Equal(t, pop.StateFinalized, p.State())
	require.ErrorIs(t, p.Finalize(io.Discard), pop.ErrInvalidState)
}

func TestInitialize_Validation(t *testing.T) {
	cal, err := dims.Uniform(1, 1)
	require.NoError(t, err)
	seq := dims.NewSequence()

	area, err := pop.NewArea(cal, 2, seq)
	require.NoError(t, err)

	p, err := pop.NewPopulation(cal, uniformAges(2), seq)
	require.NoError(t, err)

	require.ErrorIs(t, p.Initialize(0, []*pop.Area{area}), pop.ErrNoSexes)
	require.ErrorIs(t, p.Initialize(1, nil), pop.ErrNoAreas)
}

// TestFinalize_Order verifies reports appear in sex-major, area-minor
// order by comparing subpopulation ids in the output.
func TestFinalize_Order(t *testing.T) {
	cal, err := dims.Uniform(1, 1)
	require.NoError(t, err)

	p := buildPopulation(t, cal, uniformAges(2), 2, 2)
	require.NoError(t, p.Evaluate())

	var buf bytes.Buffer
	require.NoError(t, p.Finalize(&buf))

	var wantOrder []uint64
	for sex := 0; sex < 2; sex++ {
		subs, err := p.Subpopulations(sex)
		require.NoError(t, err)
		for _, sub := range subs {
			wantOrder = append(wantOrder, sub.ID())
		}
	}

	out := buf.String()
	last := -1
	for _, id := range wantOrder {
		idx := indexOfHeader(out, id)
		require.GreaterOrEqual(t, idx, 0, "subpopulation %d missing from report", id)
		require.Greater(t, idx, last, "subpopulation %d out of order", id)
		last = idx
	}
}

func indexOfHeader(out string, id uint64) int {
	header := []byte("subpopulation ")
	b := []byte(out)
	for i := 0; i+len(header) < len(b); i++ {
		if bytes.HasPrefix(b[i:], header) {
			j := i + len(header)
			var n uint64
			for j < len(b) && b[j] >= '0' && b[j] <= '9' {
				n = n*10 + uint64(b[j]-'0')
				j++
			}
			if n == id {
				return i
			}
		}
	}
	return -1
}
