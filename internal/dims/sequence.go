package dims

// Sequence hands out process-unique entity ids. The caller creates one
// Sequence per simulation and threads it through every Model constructor,
// so id assignment is deterministic and isolated between tests. Not safe
// for concurrent use; all entity construction is serial.
type Sequence struct {
	next uint64
}

// NewSequence returns a sequence starting at zero.
func NewSequence() *Sequence { return &Sequence{} }

// Next returns the next id and advances the sequence.
func (s *Sequence) Next() uint64 {
	id := s.next
	s.next++
	return id
}
