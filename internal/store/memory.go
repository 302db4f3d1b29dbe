package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process RecentStore used when no redis is configured
// and as a test double.
type MemoryStore struct {
	mu     sync.Mutex
	cities []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored list.
func (s *MemoryStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.cities))
	copy(out, s.cities)
	return out, nil
}

// Save replaces the stored list.
func (s *MemoryStore) Save(_ context.Context, cities []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = make([]string, len(cities))
	copy(s.cities, cities)
	return nil
}
