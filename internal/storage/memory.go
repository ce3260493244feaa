package storage

// Memory keeps values in process. It is not safe for concurrent use.
type Memory struct {
	values map[string][]byte
	// Writes counts successful Set calls.
	Writes int
}

func NewMemory() *Memory {
	return &Memory{values: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.values[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}
