package state

import "github.com/google/uuid"

// Sequence hands out increasing integer ids. The zero value starts at 1.
type Sequence struct {
	last int
}

// Next advances the sequence and returns the new id.
func (s *Sequence) Next() int {
	s.last++
	return s.last
}

// Observe moves the sequence past an id that was created elsewhere.
func (s *Sequence) Observe(id int) {
	if id > s.last {
		s.last = id
	}
}

// Reset rewinds the sequence so the next id is 1.
func (s *Sequence) Reset() { s.last = 0 }

func newEntityKey() string {
	return uuid.NewString()
}
