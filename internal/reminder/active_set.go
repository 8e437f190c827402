package reminder

import (
	"sync"
	"time"
)

// ActiveSet is the in-memory "needs attention now" view: appointment id to
// start time. Safe for one writer and many readers.
type ActiveSet struct {
	mu      sync.RWMutex
	entries map[uint]time.Time
}

func NewActiveSet() *ActiveSet {
	return &ActiveSet{entries: make(map[uint]time.Time)}
}

// Add inserts id and reports whether it was absent.
func (s *ActiveSet) Add(id uint, start time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; ok {
		return false
	}
	s.entries[id] = start
	return true
}

// Rekey moves an existing entry to a new start and reports whether id was
// present. Absent ids are not inserted.
func (s *ActiveSet) Rekey(id uint, start time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return false
	}
	s.entries[id] = start
	return true
}

func (s *ActiveSet) Remove(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
}

func (s *ActiveSet) Has(id uint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[id]
	return ok
}

func (s *ActiveSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Snapshot copies the entries so callers can do I/O without holding the lock.
func (s *ActiveSet) Snapshot() map[uint]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uint]time.Time, len(s.entries))
	for id, start := range s.entries {
		out[id] = start
	}
	return out
}

// Sweep drops entries that started before cutoff and returns how many went.
func (s *ActiveSet) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, start := range s.entries {
		if start.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
