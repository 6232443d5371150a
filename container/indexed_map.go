// Package container provides the ordered collections backing the decoded
// mapping tables.
package container

// IndexedMap is an insertion-ordered map with O(1) key lookup and
// positional access. Enum, schema, and property tables all preserve the
// order records appear on disk while still being addressable by name.
type IndexedMap[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []V
}

// New creates an empty IndexedMap.
func New[K comparable, V any]() *IndexedMap[K, V] {
	return &IndexedMap[K, V]{index: make(map[K]int)}
}

// NewWithCapacity creates an empty IndexedMap with room for n entries.
func NewWithCapacity[K comparable, V any](n int) *IndexedMap[K, V] {
	return &IndexedMap[K, V]{
		index:  make(map[K]int, n),
		keys:   make([]K, 0, n),
		values: make([]V, 0, n),
	}
}

// Insert stores value under key. Inserting an existing key replaces the
// value in place without disturbing its position.
func (m *IndexedMap[K, V]) Insert(key K, value V) {
	if i, ok := m.index[key]; ok {
		m.values[i] = value
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// GetByKey returns the value stored under key.
func (m *IndexedMap[K, V]) GetByKey(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// GetByIndex returns the value at insertion position i.
func (m *IndexedMap[K, V]) GetByIndex(i int) (V, bool) {
	if m == nil || i < 0 || i >= len(m.values) {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// KeyByIndex returns the key at insertion position i.
func (m *IndexedMap[K, V]) KeyByIndex(i int) (K, bool) {
	if m == nil || i < 0 || i >= len(m.keys) {
		var zero K
		return zero, false
	}
	return m.keys[i], true
}

// Contains reports whether key is present.
func (m *IndexedMap[K, V]) Contains(key K) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Len returns the number of entries.
func (m *IndexedMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *IndexedMap[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order.
func (m *IndexedMap[K, V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, len(m.values))
	copy(out, m.values)
	return out
}
