package store

import (
	"sort"
	"sync"
)

// Memory is an in-memory Backend for tests and ephemeral sessions.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// FailPuts makes every Put return an error, for exercising the
	// swallowed-write contract.
	FailPuts bool
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Put stores value under key.
func (m *Memory) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts {
		return errPutFailed
	}
	m.data[key] = value
	return nil
}

// Keys returns all keys in sorted order.
func (m *Memory) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

type putError struct{}

func (putError) Error() string { return "put failed" }

var errPutFailed = putError{}
