package storage

import (
	"sync"

	"github.com/vovakirdan/tui-clicker/internal/core"
)

// Memory is an in-process store. It keeps encoded payloads, never live state.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load returns the state saved under key.
func (m *Memory) Load(key string) (core.GameState, error) {
	m.mu.RLock()
	data, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return core.GameState{}, ErrNotFound
	}
	return Decode(data)
}

// Save stores st under key, replacing any previous value.
func (m *Memory) Save(key string, st core.GameState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	m.SetRaw(key, data)
	return nil
}

// SetRaw stores an encoded payload as-is.
func (m *Memory) SetRaw(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
}

// Raw returns the encoded payload under key.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	return append([]byte(nil), data...), ok
}
