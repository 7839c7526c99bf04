package storage

import (
	"context"
	"sync"
)

// MemoryScoreStore — in-memory реализация ScoreStore для тестов и разработки
type MemoryScoreStore struct {
	mu     sync.RWMutex
	values map[string]int64
	closed bool
}

// NewMemoryScoreStore создает новое хранилище в памяти
func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{values: make(map[string]int64)}
}

// Get implements ScoreStore
func (m *MemoryScoreStore) Get(_ context.Context, key string) (int64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements ScoreStore
func (m *MemoryScoreStore) Set(_ context.Context, key string, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

// Delete implements ScoreStore
func (m *MemoryScoreStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

// Close implements ScoreStore
func (m *MemoryScoreStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
