package storage

import (
	"sort"
	"sync"
)

var _ Store = (*Memory)(nil)

// Memory is a map-backed Store.
type Memory struct {
	mtx    sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.values[key] = value
	return nil
}

// Remove implements Store.
func (m *Memory) Remove(key string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	delete(m.values, key)
	return nil
}

// Keys implements Store.
func (m *Memory) Keys() ([]string, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.values)
}

// Close implements Store. A Memory store stays usable after Close.
func (m *Memory) Close() error {
	return nil
}
