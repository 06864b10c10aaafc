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

// Package serde defines the format-agnostic event protocol spoken between
// containers and serialization formats.
//
// A format implements Serializer and Deserializer. A container implements
// Serializable and Deserializable and never sees the bytes on the wire: on
// encode it emits "map of N" / key / value / end events, and on decode it
// hands the format a visitor that the format calls back with either a unit
// token or an access cursor over the entries.
package serde

// UnknownLength is passed to SerializeMap/SerializeSeq when the number of
// entries is not known up front
const UnknownLength = -1

// Serializer is the encode side of a format
type Serializer interface {
	SerializeMap(length int) (MapSerializer, error)
	SerializeSeq(length int) (SeqSerializer, error)
	SerializeUnit() error
}

// MapSerializer receives the entries of a map opened by Serializer.SerializeMap.
// Each SerializeKey call must be followed by exactly one SerializeValue call.
type MapSerializer interface {
	SerializeKey(key any) error
	SerializeValue(value any) error
	End() error
}

// SeqSerializer receives the elements of a sequence opened by Serializer.SerializeSeq
type SeqSerializer interface {
	SerializeElement(elem any) error
	End() error
}

// Deserializer is the decode side of a format. The format inspects the next
// item in its stream and calls back exactly one method on the visitor.
type Deserializer interface {
	DeserializeMap(visitor MapVisitor) error
	DeserializeSeq(visitor SeqVisitor) error
}

// MapVisitor is called by a Deserializer that expects a map
type MapVisitor interface {
	// VisitUnit is called when the stream holds a unit token in place of the map
	VisitUnit() error
	// VisitMap is called when the stream holds a map
	VisitMap(access MapAccess) error
}

// SeqVisitor is called by a Deserializer that expects a sequence
type SeqVisitor interface {
	VisitUnit() error
	VisitSeq(access SeqAccess) error
}

// MapAccess is a cursor over the entries of a map in the stream
type MapAccess interface {
	// SizeHint returns the number of entries the stream announced, if any.
	// The hint is not binding.
	SizeHint() (int, bool)
	// NextEntry decodes the next entry into the key and value destinations,
	// which must be pointers. It returns false once the map is exhausted.
	NextEntry(key any, value any) (bool, error)
	// End confirms that the map is closed
	End() error
}

// SeqAccess is a cursor over the elements of a sequence in the stream
type SeqAccess interface {
	SizeHint() (int, bool)
	NextElement(elem any) (bool, error)
	End() error
}

// Serializable is implemented by types that describe themselves through a Serializer
type Serializable interface {
	Serialize(s Serializer) error
}

// Deserializable is implemented by types that rebuild themselves from a Deserializer
type Deserializable interface {
	Deserialize(d Deserializer) error
}
