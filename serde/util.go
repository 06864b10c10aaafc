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

package serde

import (
	"reflect"
)

// MaxCautiousSizeHint is the largest size hint that CautiousSizeHint passes through
const MaxCautiousSizeHint = 4096

var (
	serializableType   = reflect.TypeFor[Serializable]()
	deserializableType = reflect.TypeFor[Deserializable]()
)

// CautiousSizeHint returns a capacity suitable for pre-allocating storage from a
// size hint announced by the stream. Hints come from untrusted input, so they
// are clamped to MaxCautiousSizeHint.
func CautiousSizeHint(hint int) int {
	if hint < 0 {
		return 0
	}
	return min(hint, MaxCautiousSizeHint)
}

// AsSerializable returns the Serializable behind v. This covers values that
// implement the interface directly as well as non-pointer values whose
// pointer type implements it (such as a linearmap.Map stored by value).
func AsSerializable(v any) (Serializable, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.(Serializable); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return nil, false
	}
	if !reflect.PointerTo(rv.Type()).Implements(serializableType) {
		return nil, false
	}
	// Copy into an addressable value so that the pointer method set is available
	tmp := reflect.New(rv.Type())
	tmp.Elem().Set(rv)
	s, ok := tmp.Interface().(Serializable)
	return s, ok
}

// AsDeserializable returns the Deserializable behind the decode destination
// dest. dest is normally a pointer to a type implementing Deserializable, but
// a pointer to a pointer (such as **linearmap.Map) is also accepted, in which
// case a new value is allocated when the inner pointer is nil.
func AsDeserializable(dest any) (Deserializable, bool) {
	if dest == nil {
		return nil, false
	}
	if d, ok := dest.(Deserializable); ok {
		return d, true
	}
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	inner := rv.Elem()
	if inner.Kind() != reflect.Pointer || !inner.Type().Implements(deserializableType) {
		return nil, false
	}
	if inner.IsNil() {
		inner.Set(reflect.New(inner.Type().Elem()))
	}
	d, ok := inner.Interface().(Deserializable)
	return d, ok
}
