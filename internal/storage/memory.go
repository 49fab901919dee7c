package storage

import "sync"

// MemoryKV is a process-local KV. It backs tests and one-shot commands that
// should not touch disk.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Init() error           { return nil }
func (m *MemoryKV) Load() error           { return nil }
func (m *MemoryKV) Close() error          { return nil }
func (m *MemoryKV) GetConfigPath() string { return "memory" }

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}
