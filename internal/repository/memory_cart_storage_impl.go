package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   []byte
	touched time.Time
}

// MemoryCartStorageImpl keeps carts in process memory. Carts are lost on
// restart.
type MemoryCartStorageImpl struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func CreateNewMemoryCartStorage() CartStorage {
	return &MemoryCartStorageImpl{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryCartStorageImpl) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}

	return append([]byte{}, entry.value...), nil
}

func (s *MemoryCartStorageImpl) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: append([]byte{}, value...), touched: s.now()}

	return nil
}

func (s *MemoryCartStorageImpl) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func (s *MemoryCartStorageImpl) PurgeIdle(ctx context.Context, before time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for key, entry := range s.entries {
		if entry.touched.Before(before) {
			keys = append(keys, key)
			delete(s.entries, key)
		}
	}

	return keys, nil
}
