// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

// OrderedMap is a map that remembers insertion order, the way a JSON object
// (spec §4.6) must when round-tripped: re-serializing it must reproduce the
// key order the source document used, not Go's randomized map order.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
	index  map[K]int
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		values: make(map[K]V),
		index:  make(map[K]int),
	}
}

// Set inserts or updates key; an update does not move the key's position.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := m.index[key]; !exists {
		m.index[key] = len(m.keys)
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, shifting later keys' positions down by one; deletion
// is O(n) in the number of keys after the deleted one.
func (m *OrderedMap[K, V]) Delete(key K) {
	i, exists := m.index[key]
	if !exists {
		return
	}
	delete(m.values, key)
	delete(m.index, key)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
}

func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// KeyAt and ValueAt give positional access for the descriptor.CollectionOps
// vtable, which identifies map entries by index rather than by key.
func (m *OrderedMap[K, V]) KeyAt(i int) K { return m.keys[i] }

func (m *OrderedMap[K, V]) ValueAt(i int) V { return m.values[m.keys[i]] }

func (m *OrderedMap[K, V]) Keys() []K {
	cp := make([]K, len(m.keys))
	copy(cp, m.keys)
	return cp
}
