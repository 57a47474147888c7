package recur

import (
	"sync"
	"time"
)

// FiredStore remembers the last instant each key fired. Keys are reminder or
// task ids; entries for deleted entities must be purged so a recreated
// entity with the same identity does not inherit stale timing.
type FiredStore interface {
	// LastFired returns the remembered instant for key, if any.
	LastFired(key string) (time.Time, bool)
	// MarkFired records that key fired at the given instant.
	MarkFired(key string, at time.Time)
	// Purge forgets key.
	Purge(key string)
	// PruneExcept forgets every key not present in keep and returns the
	// forgotten keys.
	PruneExcept(keep map[string]struct{}) []string
}

// MemoryFiredStore is the transient in-process FiredStore. It resets with
// the process, matching the engine's at-most-once-per-window guarantee being
// scoped to a running sweep loop.
type MemoryFiredStore struct {
	mu    sync.Mutex
	fired map[string]time.Time
}

func NewMemoryFiredStore() *MemoryFiredStore {
	return &MemoryFiredStore{fired: make(map[string]time.Time)}
}

func (s *MemoryFiredStore) LastFired(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.fired[key]
	return at, ok
}

func (s *MemoryFiredStore) MarkFired(key string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fired[key] = at
}

func (s *MemoryFiredStore) Purge(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fired, key)
}

func (s *MemoryFiredStore) PruneExcept(keep map[string]struct{}) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for key := range s.fired {
		if _, ok := keep[key]; !ok {
			delete(s.fired, key)
			removed = append(removed, key)
		}
	}
	return removed
}
