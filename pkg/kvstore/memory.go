package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for local development and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	data          map[string]string
	maxValueBytes int
}

// NewMemoryStore creates an empty MemoryStore. maxValueBytes of 0 disables
// the quota check.
func NewMemoryStore(maxValueBytes int) *MemoryStore {
	return &MemoryStore{
		data:          make(map[string]string),
		maxValueBytes: maxValueBytes,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if s.maxValueBytes > 0 && len(value) > s.maxValueBytes {
		return ErrQuotaExceeded
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
