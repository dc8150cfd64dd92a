package kv

import "sync"

// Memory is an in-process Store with an optional byte quota, counted over the
// total size of all stored keys and values. A quota of 0 means unlimited.
// It doubles as the quota-pressure harness in tests.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]string
	quota int
	used  int
}

// NewMemory creates an empty in-memory store with the given quota in bytes.
func NewMemory(quota int) *Memory {
	return &Memory{
		data:  make(map[string]string),
		quota: quota,
	}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used + len(key) + len(value)
	if prev, ok := m.data[key]; ok {
		next -= len(key) + len(prev)
	}
	if m.quota > 0 && next > m.quota {
		return ErrQuotaExceeded
	}
	m.data[key] = value
	m.used = next
	return nil
}

// Delete removes a key. Absent keys are ignored.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.data[key]; ok {
		m.used -= len(key) + len(prev)
		delete(m.data, key)
	}
}

// Used reports the bytes currently accounted against the quota.
func (m *Memory) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}
