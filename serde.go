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

package linearmap

import (
	"github.com/blinklabs-io/linearmap/serde"
)

// Serialize emits the map as a map of Len() entries, in insertion order
func (m *Map[K, V]) Serialize(s serde.Serializer) error {
	state, err := s.SerializeMap(m.Len())
	if err != nil {
		return newEncodeError(err)
	}
	for k, v := range m.All() {
		if err := state.SerializeKey(k); err != nil {
			return newEncodeError(err)
		}
		if err := state.SerializeValue(v); err != nil {
			return newEncodeError(err)
		}
	}
	if err := state.End(); err != nil {
		return newEncodeError(err)
	}
	return nil
}

// Deserialize replaces the contents of the map with the map read from d. The
// receiver is left untouched on error.
func (m *Map[K, V]) Deserialize(d serde.Deserializer) error {
	if m == nil {
		return newDecodeError(ErrNilReceiver)
	}
	tmp, err := DeserializeMap[K, V](d)
	if err != nil {
		return err
	}
	*m = *tmp
	return nil
}

// MapVisitor builds a Map from the callbacks of a serde.Deserializer
type MapVisitor[K comparable, V any] struct {
	value *Map[K, V]
}

func NewMapVisitor[K comparable, V any]() *MapVisitor[K, V] {
	return &MapVisitor[K, V]{}
}

// Value returns the decoded map, or nil if nothing has been decoded
func (v *MapVisitor[K, V]) Value() *Map[K, V] {
	return v.value
}

// VisitUnit accepts the unit token as an empty map
func (v *MapVisitor[K, V]) VisitUnit() error {
	v.value = New[K, V]()
	return nil
}

func (v *MapVisitor[K, V]) VisitMap(access serde.MapAccess) error {
	hint, _ := access.SizeHint()
	values := WithCapacity[K, V](serde.CautiousSizeHint(hint))
	for {
		var key K
		var value V
		ok, err := access.NextEntry(&key, &value)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		values.Insert(key, value)
	}
	if err := access.End(); err != nil {
		return err
	}
	v.value = values
	return nil
}

// DeserializeMap reads a map from d. A unit token yields an empty map.
func DeserializeMap[K comparable, V any](d serde.Deserializer) (*Map[K, V], error) {
	visitor := NewMapVisitor[K, V]()
	if err := d.DeserializeMap(visitor); err != nil {
		return nil, newDecodeError(err)
	}
	if visitor.Value() == nil {
		return nil, newDecodeError(ErrNoValue)
	}
	return visitor.Value(), nil
}

// Serialize emits the set as a sequence of Len() elements, in insertion order
func (s *Set[T]) Serialize(ser serde.Serializer) error {
	state, err := ser.SerializeSeq(s.Len())
	if err != nil {
		return newEncodeError(err)
	}
	for elem := range s.All() {
		if err := state.SerializeElement(elem); err != nil {
			return newEncodeError(err)
		}
	}
	if err := state.End(); err != nil {
		return newEncodeError(err)
	}
	return nil
}

// Deserialize replaces the contents of the set with the sequence read from d.
// The receiver is left untouched on error.
func (s *Set[T]) Deserialize(d serde.Deserializer) error {
	if s == nil {
		return newDecodeError(ErrNilReceiver)
	}
	tmp, err := DeserializeSet[T](d)
	if err != nil {
		return err
	}
	*s = *tmp
	return nil
}

// SetVisitor builds a Set from the callbacks of a serde.Deserializer
type SetVisitor[T comparable] struct {
	value *Set[T]
}

func NewSetVisitor[T comparable]() *SetVisitor[T] {
	return &SetVisitor[T]{}
}

func (v *SetVisitor[T]) Value() *Set[T] {
	return v.value
}

func (v *SetVisitor[T]) VisitUnit() error {
	v.value = NewSet[T]()
	return nil
}

func (v *SetVisitor[T]) VisitSeq(access serde.SeqAccess) error {
	hint, _ := access.SizeHint()
	values := SetWithCapacity[T](serde.CautiousSizeHint(hint))
	for {
		var elem T
		ok, err := access.NextElement(&elem)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		// A repeated element is absorbed
		values.Insert(elem)
	}
	if err := access.End(); err != nil {
		return err
	}
	v.value = values
	return nil
}

// DeserializeSet reads a set from d. A unit token yields an empty set.
func DeserializeSet[T comparable](d serde.Deserializer) (*Set[T], error) {
	visitor := NewSetVisitor[T]()
	if err := d.DeserializeSeq(visitor); err != nil {
		return nil, newDecodeError(err)
	}
	if visitor.Value() == nil {
		return nil, newDecodeError(ErrNoValue)
	}
	return visitor.Value(), nil
}
