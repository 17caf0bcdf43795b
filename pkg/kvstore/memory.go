package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-process store. It backs tests and local
// development; the contract matches the remote backends exactly.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Record)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecord(rec), nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = copyRecord(rec)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, key string, fields Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[key]
	if !ok {
		return ErrNotFound
	}
	for name, value := range fields {
		rec[name] = value
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *MemoryStore) Scan(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]Record, 0, len(s.m))
	for _, rec := range s.m {
		records = append(records, copyRecord(rec))
	}
	return records, nil
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for name, value := range rec {
		out[name] = value
	}
	return out
}
