package pop

import (
	"fmt"

	"github.com/talgya/popsim/internal/dims"
)

// Base carries what every population entity shares: a dimension model and
// the ordered list of age-class labels. Ages are opaque numeric labels
// (typically years), not indices into anything.
type Base struct {
	model *dims.Model
	ages  []float64
}

func newBase(cal dims.Calendar, ages []float64, seq *dims.Sequence) (Base, error) {
	m, err := dims.New(cal, len(ages), seq)
	if err != nil {
		return Base{}, err
	}
	return Base{
		model: m,
		ages:  append([]float64(nil), ages...),
	}, nil
}

// ID returns the entity's process-unique id.
func (b *Base) ID() uint64 { return b.model.ID() }

// Model returns the entity's dimension model.
func (b *Base) Model() *dims.Model { return b.model }

// Ages returns a copy of the age-class labels.
func (b *Base) Ages() []float64 {
	return append([]float64(nil), b.ages...)
}

// AgeLabel returns the label of the given age class.
func (b *Base) AgeLabel(age int) (float64, error) {
	if age < 0 || age >= len(b.ages) {
		return 0, fmt.Errorf("%w: age %d of %d", dims.ErrIndexOutOfRange, age, len(b.ages))
	}
	return b.ages[age], nil
}
