package memory

import (
	"sync"

	"wolfden/internal/domain/predator"
)

const DefaultMaxEvents = 10000

// Store keeps the most recent journal events in arrival order. Older events
// are dropped once MaxEvents is reached.
type Store struct {
	mu        sync.RWMutex
	events    []predator.Event
	maxEvents int
}

func NewStore(maxEvents int) *Store {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	return &Store{maxEvents: maxEvents}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
