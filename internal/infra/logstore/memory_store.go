package logstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/domain/visitlog"
)

// SearchLog is one row of the search-attempt log.
type SearchLog struct {
	ID         string
	Username   string
	SearchTime time.Time
	Status     profile.AttemptStatus
}

// MemoryStore keeps search attempts and visits in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	searches []SearchLog
	visits   map[string]visitlog.Entry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{visits: make(map[string]visitlog.Entry)}
}

func (s *MemoryStore) LogAttempt(_ context.Context, username string, status profile.AttemptStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, SearchLog{
		ID:         uuid.NewString(),
		Username:   username,
		SearchTime: normalizeTime(at),
		Status:     status,
	})
	return nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, username string, status profile.AttemptStatus, at time.Time) error {
	at = normalizeTime(at)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.searches {
		if s.searches[i].Username == username && s.searches[i].SearchTime.Equal(at) {
			s.searches[i].Status = status
		}
	}
	return nil
}

// Searches returns a snapshot of the search-attempt log.
func (s *MemoryStore) Searches() []SearchLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SearchLog(nil), s.searches...)
}

func (s *MemoryStore) CreateVisit(_ context.Context, userID string, at time.Time) (visitlog.Entry, error) {
	entry := visitlog.Entry{ID: uuid.NewString(), UserID: userID, CreatedAt: normalizeTime(at)}
	s.mu.Lock()
	s.visits[entry.ID] = entry
	s.mu.Unlock()
	return entry, nil
}

func (s *MemoryStore) UpdateVisitProfile(_ context.Context, id, realName string, totalSolved int) (visitlog.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.visits[id]
	if !ok {
		return visitlog.Entry{}, false, nil
	}
	solved := totalSolved
	entry.RealName = realName
	entry.TotalSolved = &solved
	s.visits[id] = entry
	return entry, true, nil
}

func (s *MemoryStore) MarkVisitScrolled(_ context.Context, id string, fullyScrolled bool) (visitlog.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.visits[id]
	if !ok {
		return visitlog.Entry{}, false, nil
	}
	entry.FullyScrolled = fullyScrolled
	s.visits[id] = entry
	return entry, true, nil
}

var (
	_ profile.AttemptLogger = (*MemoryStore)(nil)
	_ visitlog.Repository   = (*MemoryStore)(nil)
)
