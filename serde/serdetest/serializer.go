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

package serdetest

import (
	"github.com/blinklabs-io/linearmap/serde"
)

// Serializer records the events it receives as tokens
type Serializer struct {
	tokens []Token
	config config
}

func NewSerializer(opts ...OptionFunc) *Serializer {
	return &Serializer{
		tokens: []Token{},
		config: newConfig(opts...),
	}
}

// Tokens returns the tokens recorded so far
func (s *Serializer) Tokens() []Token {
	return s.tokens
}

func (s *Serializer) emit(t Token) error {
	if len(s.tokens) == s.config.failAt {
		return s.config.failErr
	}
	s.tokens = append(s.tokens, t)
	return nil
}

func (s *Serializer) emitItem(v any) error {
	if tmp, ok := serde.AsSerializable(v); ok {
		return tmp.Serialize(s)
	}
	return s.emit(Value(v))
}

func (s *Serializer) SerializeMap(length int) (serde.MapSerializer, error) {
	if err := s.emit(Token{Kind: TokenKindMapStart, Len: max(length, -1)}); err != nil {
		return nil, err
	}
	return &mapSerializer{s: s}, nil
}

func (s *Serializer) SerializeSeq(length int) (serde.SeqSerializer, error) {
	if err := s.emit(Token{Kind: TokenKindSeqStart, Len: max(length, -1)}); err != nil {
		return nil, err
	}
	return &seqSerializer{s: s}, nil
}

func (s *Serializer) SerializeUnit() error {
	return s.emit(Unit())
}

type mapSerializer struct {
	s *Serializer
}

func (m *mapSerializer) SerializeKey(key any) error {
	return m.s.emitItem(key)
}

func (m *mapSerializer) SerializeValue(value any) error {
	return m.s.emitItem(value)
}

func (m *mapSerializer) End() error {
	return m.s.emit(MapEnd())
}

type seqSerializer struct {
	s *Serializer
}

func (q *seqSerializer) SerializeElement(elem any) error {
	return q.s.emitItem(elem)
}

func (q *seqSerializer) End() error {
	return q.s.emit(SeqEnd())
}
