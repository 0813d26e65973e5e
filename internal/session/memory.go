package session

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, origin, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[origin][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, origin, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[origin]
	if !ok {
		bucket = make(map[string]string)
		m.data[origin] = bucket
	}
	bucket[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, origin, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[origin], key)
	return nil
}
