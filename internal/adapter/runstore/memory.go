package runstore

import (
	"sync"

	"tmxmine/internal/domain"
)

// MemoryStore is an in-memory RunStore for tests and one-shot library use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs []domain.RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) PutRun(rec domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, rec)
	return nil
}

func (s *MemoryStore) ListRuns() ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]domain.RunRecord, len(s.runs))
	copy(runs, s.runs)
	return runs, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
