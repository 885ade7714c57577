package pop

import (
	"fmt"
	"sync"
)

// EvaluateParallel sweeps the grid like EvaluateWith, fanning out one
// goroutine per (sex, area) partition. Every cell writes a distinct slot
// in its own subpopulation's array, so partitions share nothing; the only
// synchronization is the join before returning. Grid contents are
// identical to the serial sweep — only the order of side effects in fn
// differs, so fn must not carry cross-partition state.
func (p *Population) EvaluateParallel(fn CellFunc) error {
	if p.state != StateInitialized {
		return fmt.Errorf("%w: evaluate while %s", ErrInvalidState, p.state)
	}

	var wg sync.WaitGroup
	errs := make([]error, p.nsexes*len(p.areas))
	for sex := 0; sex < p.nsexes; sex++ {
		for areaIdx, sub := range p.subs[sex] {
			wg.Add(1)
			go func(sex, areaIdx int, sub *Subpopulation) {
				defer wg.Done()
				errs[sex*len(p.areas)+areaIdx] = p.evaluatePartition(sex, areaIdx, sub, fn)
			}(sex, areaIdx, sub)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	p.state = StateEvaluated
	return nil
}
