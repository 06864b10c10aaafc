// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package linearmap implements small insertion-ordered maps and sets backed by a
// flat slice and searched by linear scan, along with their adapters for the
// format-agnostic serde protocol.
package linearmap

import (
	"iter"
	"slices"

	"github.com/jinzhu/copier"
)

// Entry is a single key/value pair stored in a Map
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an insertion-ordered map. Lookups are a linear scan over the entries.
// No two entries share a key.
type Map[K comparable, V any] struct {
	entries []Entry[K, V]
}

// New returns an empty map
func New[K comparable, V any]() *Map[K, V] {
	return WithCapacity[K, V](0)
}

// WithCapacity returns an empty map with room for n entries
func WithCapacity[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		entries: make([]Entry[K, V], 0, max(n, 0)),
	}
}

// Len returns the number of entries
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Capacity returns the number of entries the map can hold without growing
func (m *Map[K, V]) Capacity() int {
	if m == nil {
		return 0
	}
	return cap(m.entries)
}

func (m *Map[K, V]) index(key K) int {
	if m == nil {
		return -1
	}
	for i := range m.entries {
		if m.entries[i].Key == key {
			return i
		}
	}
	return -1
}

// Insert sets the value for key. When the key is already present its value is
// replaced in place and the previous value is returned with true. The key keeps
// the position of its first insertion.
func (m *Map[K, V]) Insert(key K, value V) (V, bool) {
	if idx := m.index(key); idx >= 0 {
		old := m.entries[idx].Value
		m.entries[idx].Value = value
		return old, true
	}
	m.entries = append(m.entries, Entry[K, V]{Key: key, Value: value})
	var zero V
	return zero, false
}

// Get returns the value for key
func (m *Map[K, V]) Get(key K) (V, bool) {
	if idx := m.index(key); idx >= 0 {
		return m.entries[idx].Value, true
	}
	var zero V
	return zero, false
}

func (m *Map[K, V]) ContainsKey(key K) bool {
	return m.index(key) >= 0
}

// Remove deletes key from the map and returns its value. The relative order of
// the remaining entries is unchanged.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	idx := m.index(key)
	if idx < 0 {
		var zero V
		return zero, false
	}
	old := m.entries[idx].Value
	m.entries = slices.Delete(m.entries, idx, idx+1)
	return old, true
}

// Clear removes all entries while keeping the allocated storage
func (m *Map[K, V]) Clear() {
	if m == nil {
		return
	}
	clear(m.entries)
	m.entries = m.entries[:0]
}

// All returns an iterator over the entries in insertion order
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, entry := range m.entries {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in insertion order
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in insertion order
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in insertion order
func (m *Map[K, V]) Entries() []Entry[K, V] {
	if m == nil {
		return []Entry[K, V]{}
	}
	return slices.Clone(m.entries)
}

// Clone returns a deep copy of the map
func (m *Map[K, V]) Clone() (*Map[K, V], error) {
	ret := WithCapacity[K, V](m.Len())
	if m.Len() == 0 {
		return ret, nil
	}
	if err := copier.CopyWithOption(
		&ret.entries,
		&m.entries,
		copier.Option{DeepCopy: true},
	); err != nil {
		return nil, err
	}
	return ret, nil
}
