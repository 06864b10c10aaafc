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
	"iter"
	"slices"
)

// Set is an insertion-ordered set built on Map
type Set[T comparable] struct {
	m Map[T, struct{}]
}

// NewSet returns an empty set
func NewSet[T comparable]() *Set[T] {
	return SetWithCapacity[T](0)
}

// SetWithCapacity returns an empty set with room for n elements
func SetWithCapacity[T comparable](n int) *Set[T] {
	return &Set[T]{
		m: *WithCapacity[T, struct{}](n),
	}
}

func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return s.m.Len()
}

func (s *Set[T]) IsEmpty() bool {
	return s.Len() == 0
}

func (s *Set[T]) Capacity() int {
	if s == nil {
		return 0
	}
	return s.m.Capacity()
}

// Insert adds elem to the set. It returns false if elem was already present,
// in which case the set is unchanged.
func (s *Set[T]) Insert(elem T) bool {
	_, replaced := s.m.Insert(elem, struct{}{})
	return !replaced
}

func (s *Set[T]) Contains(elem T) bool {
	if s == nil {
		return false
	}
	return s.m.ContainsKey(elem)
}

// Remove deletes elem from the set and reports whether it was present
func (s *Set[T]) Remove(elem T) bool {
	if s == nil {
		return false
	}
	_, ok := s.m.Remove(elem)
	return ok
}

func (s *Set[T]) Clear() {
	if s == nil {
		return
	}
	s.m.Clear()
}

// All returns an iterator over the elements in insertion order
func (s *Set[T]) All() iter.Seq[T] {
	if s == nil {
		return func(func(T) bool) {}
	}
	return s.m.Keys()
}

// Values returns the elements in insertion order
func (s *Set[T]) Values() []T {
	return slices.AppendSeq(make([]T, 0, s.Len()), s.All())
}

// Clone returns a deep copy of the set
func (s *Set[T]) Clone() (*Set[T], error) {
	if s == nil {
		return NewSet[T](), nil
	}
	tmp, err := s.m.Clone()
	if err != nil {
		return nil, err
	}
	return &Set[T]{m: *tmp}, nil
}
