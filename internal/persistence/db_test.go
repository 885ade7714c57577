package persistence_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/popsim/internal/dims"
	"github.com/talgya/popsim/internal/persistence"
	"github.com/talgya/popsim/internal/pop"
)

func evaluatedPopulation(t *testing.T) *pop.Population {
	t.Helper()
	cal, err := dims.Uniform(2, 2)
	require.NoError(t, err)

	seq := dims.NewSequence()
	ages := []float64{1, 2, 3}

	areas := make([]*pop.Area, 2)
	for i := range areas {
		areas[i], err = pop.NewArea(cal, len(ages), seq)
		require.NoError(t, err)
	}

	p, err := pop.NewPopulation(cal, ages, seq)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(2, areas))
	require.NoError(t, p.Evaluate())
	return p
}

func TestSaveLoadRun(t *testing.T) {
	db, err := persistence.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	p := evaluatedPopulation(t)
	runID, err := db.SaveRun(p)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	for sex := 0; sex < p.NSexes(); sex++ {
		subs, err := p.Subpopulations(sex)
		require.NoError(t, err)
		for areaOrd, sub := range subs {
			got, err := db.LoadQuantities(runID, sex, areaOrd)
			require.NoError(t, err)
			require.Equal(t, sub.Quantities(), got)
		}
	}
}

func TestSaveRun_RequiresEvaluated(t *testing.T) {
	db, err := persistence.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	cal, err := dims.Uniform(1, 1)
	require.NoError(t, err)
	p, err := pop.NewPopulation(cal, []float64{1}, dims.NewSequence())
	require.NoError(t, err)

	_, err = db.SaveRun(p)
	require.Error(t, err)
}

func TestListRuns(t *testing.T) {
	db, err := persistence.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	p := evaluatedPopulation(t)
	runID, err := db.SaveRun(p)
	require.NoError(t, err)

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, runID, runs[0].ID)
	require.Equal(t, 2, runs[0].NYears)
	require.Equal(t, 2, runs[0].MaxSeasons)
	require.Equal(t, 3, runs[0].NAges)
	require.Equal(t, 2, runs[0].NSexes)
	require.Equal(t, 2, runs[0].NAreas)
}
