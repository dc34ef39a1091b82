package journal

import (
	"sort"
	"sync"

	"github.com/rustyeddy/fibjournal/logger"
)

// MemoryStore keeps encoded entry lists in a map. Values go through the
// same JSON encoding as the persistent stores.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(key string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeEntries(m.data[key], key, logger.Discard().Logger), nil
}

func (m *MemoryStore) Save(key string, entries []Entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

// SetRaw stores data under key as-is.
func (m *MemoryStore) SetRaw(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
}

// Keys lists the stored keys in name order.
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
