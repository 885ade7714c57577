package dims

import "fmt"

// Model owns the year/season/age extents of one simulation entity and
// computes dimension-folded indexes into dense storage. The season
// dimension of the storage is always MaxSeasons wide, so years with fewer
// seasons in a variable calendar leave trailing slots unused.
// Immutable once built.
type Model struct {
	id         uint64
	nages      int
	cal        Calendar
	maxSeasons int
}

// New builds a Model over the given calendar and age extent, drawing the
// entity id from seq.
func New(cal Calendar, nages int, seq *Sequence) (*Model, error) {
	if cal.Years() < 1 {
		return nil, fmt.Errorf("%w: calendar has no years", ErrBadExtent)
	}
	if nages < 1 {
		return nil, fmt.Errorf("%w: nages=%d", ErrBadExtent, nages)
	}
	return &Model{
		id:         seq.Next(),
		nages:      nages,
		cal:        cal,
		maxSeasons: cal.MaxSeasons(),
	}, nil
}

// ID returns the entity's process-unique id.
func (m *Model) ID() uint64 { return m.id }

// Years returns the year extent.
func (m *Model) Years() int { return m.cal.Years() }

// Ages returns the age-class extent.
func (m *Model) Ages() int { return m.nages }

// MaxSeasons returns the season extent of the dense storage.
func (m *Model) MaxSeasons() int { return m.maxSeasons }

// Calendar returns the model's season calendar.
func (m *Model) Calendar() Calendar { return m.cal }

// SeasonsIn returns the number of seasons defined for the given year.
func (m *Model) SeasonsIn(year int) (int, error) {
	return m.cal.SeasonsIn(year)
}

// GridSize returns the length of a dense array covering every
// (year, season, age) cell: nyears * maxSeasons * nages.
func (m *Model) GridSize() int {
	return m.cal.Years() * m.maxSeasons * m.nages
}

// Index returns the dimension-folded offset for (year, season, age):
//
//	year*maxSeasons*nages + season*nages + age
//
// Every argument is validated against its declared extent; the season
// extent is MaxSeasons, the shape of the storage, so padding slots of a
// variable calendar are addressable even though evaluation never visits
// them.
func (m *Model) Index(year, season, age int) (int, error) {
	if err := m.checkTime(year, season); err != nil {
		return 0, err
	}
	if age < 0 || age >= m.nages {
		return 0, fmt.Errorf("%w: age %d of %d", ErrIndexOutOfRange, age, m.nages)
	}
	return year*m.maxSeasons*m.nages + season*m.nages + age, nil
}

// TimeIndex returns the time-only folded offset for (year, season):
//
//	year*maxSeasons*nages + season
//
// Note that the season term carries no nages factor, so TimeIndex is not
// Index with age 0: it addresses a distinct, time-only index space. No
// popsim code uses it to address quantity storage; it exists for callers
// that key time-series state the same way.
func (m *Model) TimeIndex(year, season int) (int, error) {
	if err := m.checkTime(year, season); err != nil {
		return 0, err
	}
	return year*m.maxSeasons*m.nages + season, nil
}

func (m *Model) checkTime(year, season int) error {
	if year < 0 || year >= m.cal.Years() {
		return fmt.Errorf("%w: year %d of %d", ErrIndexOutOfRange, year, m.cal.Years())
	}
	if season < 0 || season >= m.maxSeasons {
		return fmt.Errorf("%w: season %d of %d", ErrIndexOutOfRange, season, m.maxSeasons)
	}
	return nil
}
