package profilestore

import (
	"context"
	"sync"

	"github.com/yanqian/leetlens/internal/domain/profile"
)

// MemoryStore keeps cache entries in process memory. Entries are never
// evicted; staleness is judged by the reader.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]profile.CacheEntry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]profile.CacheEntry)}
}

// Get implements profile.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (profile.CacheEntry, bool, error) {
	if key == "" {
		return profile.CacheEntry{}, false, nil
	}
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	return entry, ok, nil
}

// Save overwrites any previous entry for key.
func (s *MemoryStore) Save(_ context.Context, key string, entry profile.CacheEntry) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// Len reports how many entries are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ profile.Store = (*MemoryStore)(nil)
