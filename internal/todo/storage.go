package todo

// Storage is a synchronous key-value store holding the serialized list.
// GetItem reports ok=false when the key has never been written.
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
}

// MemoryStorage is a map-backed Storage. The zero value is ready to use.
type MemoryStorage struct {
	values map[string]string
}

// NewMemoryStorage returns a MemoryStorage seeded with the given pairs
func NewMemoryStorage(seed map[string]string) *MemoryStorage {
	m := &MemoryStorage{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.values[k] = v
	}
	return m
}

func (m *MemoryStorage) GetItem(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}
