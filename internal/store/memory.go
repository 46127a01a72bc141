package store

import (
	"context"
	"sync"
	"time"

	"studydesk/internal/content"
)

// MemoryStore keeps records in a map. Meant for local runs and tests; it
// mirrors the upsert semantics of the Postgres store, including the
// store-assigned write timestamp.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]content.Record
}

func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string]content.Record)}
}

func (s *MemoryStore) Put(_ context.Context, record content.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.CreatedAt = time.Now()
	s.records[record.Key] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (content.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return content.Record{}, ErrRecordNotFound
	}
	return rec, nil
}
