package storage

import "sync"

// KV is the durable key-value medium the repository persists slots into
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Batcher is implemented by stores that can apply several writes as one unit.
// fn receives a KV bound to the batch; returning an error discards every write.
type Batcher interface {
	Batch(fn func(KV) error) error
}

// MemoryKV is a map-backed KV for tests and dry runs
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
