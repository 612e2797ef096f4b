// Package repo contains all storage access for the EuroPlan API.
// Trip data lives under a single key in a key/value store that plays the role
// of the browser's localStorage; KVStore has file, Postgres and in-memory
// implementations. No business logic lives here.
package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/agu27/EuroPlan/internal/domain"
)

// KVStore is the minimal localStorage-like contract the app persists through.
// Values are opaque bytes and every Set replaces the previous value in full.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been set or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// memoryKV keeps values in a map. It is safe for concurrent use.
type memoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKV constructs an empty in-process KVStore.
// Data is lost when the process exits; use it for tests and throwaway runs.
func NewMemoryKV() KVStore {
	return &memoryKV{values: make(map[string][]byte)}
}

func (m *memoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("repo.memoryKV.Get: %w", domain.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value []byte) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
