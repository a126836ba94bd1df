package services

import "sync/atomic"

// DefaultSequenceBaseline is where user and account counters start; the
// first generated id uses baseline+1.
const DefaultSequenceBaseline = 1000

// Sequence is a process-wide monotonic counter safe for concurrent use.
type Sequence struct {
	baseline int64
	value    atomic.Int64
}

func NewSequence(baseline int64) *Sequence {
	s := &Sequence{baseline: baseline}
	s.value.Store(baseline)
	return s
}

func (s *Sequence) Next() int64 {
	return s.value.Add(1)
}

func (s *Sequence) Current() int64 {
	return s.value.Load()
}

// Reset rewinds the counter to its baseline. Only meant for tests.
func (s *Sequence) Reset() {
	s.value.Store(s.baseline)
}
