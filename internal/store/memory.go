package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// MemoryStore keeps rotation history in process memory. Useful for tests
// and one-shot CLI runs where persistence does not matter.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]model.RotationEntry
}

func NewMemory() *MemoryStore {
	return &MemoryStore{entries: make(map[string]model.RotationEntry)}
}

func (s *MemoryStore) Migrate(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetEntry(_ context.Context, userID string) (*model.RotationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	cp := entry
	return &cp, nil
}

func (s *MemoryStore) SetEntry(_ context.Context, entry model.RotationEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.UserID] = entry
	return nil
}
