// Package persist defines where saved boards live between sessions.
package persist

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("persist: key not found")

// Store keeps serialized board documents under string keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// Memory is a Store backed by a map. It is safe for concurrent use.
type Memory struct {
	data map[string][]byte
	mu   sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (m *Memory) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(data)
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (m *Memory) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
