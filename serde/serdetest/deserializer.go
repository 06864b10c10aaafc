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
	"errors"
	"fmt"
	"reflect"

	"github.com/blinklabs-io/linearmap/serde"
)

var (
	ErrEndOfTokens     = errors.New("unexpected end of tokens")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrTypeMismatch    = errors.New("token value type mismatch")
)

// Deserializer replays a token stream. Declared lengths are only reported as
// size hints: entries are read until the closing token.
type Deserializer struct {
	tokens []Token
	pos    int
	config config
}

func NewDeserializer(tokens []Token, opts ...OptionFunc) *Deserializer {
	return &Deserializer{
		tokens: tokens,
		config: newConfig(opts...),
	}
}

// Remaining returns the number of tokens not consumed yet
func (d *Deserializer) Remaining() int {
	return len(d.tokens) - d.pos
}

func (d *Deserializer) peek() (Token, error) {
	if d.pos == d.config.failAt {
		return Token{}, d.config.failErr
	}
	if d.pos >= len(d.tokens) {
		return Token{}, ErrEndOfTokens
	}
	return d.tokens[d.pos], nil
}

func (d *Deserializer) next() (Token, error) {
	t, err := d.peek()
	if err != nil {
		return Token{}, err
	}
	d.pos++
	return t, nil
}

func (d *Deserializer) expect(kind TokenKind) error {
	t, err := d.next()
	if err != nil {
		return err
	}
	if t.Kind != kind {
		return fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedToken, kind, t)
	}
	return nil
}

func (d *Deserializer) DeserializeMap(visitor serde.MapVisitor) error {
	t, err := d.next()
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenKindUnit:
		return visitor.VisitUnit()
	case TokenKindMapStart:
		return visitor.VisitMap(&mapAccess{d: d, length: t.Len})
	default:
		return fmt.Errorf("%w: expected MapStart or Unit, got %s", ErrUnexpectedToken, t)
	}
}

func (d *Deserializer) DeserializeSeq(visitor serde.SeqVisitor) error {
	t, err := d.next()
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenKindUnit:
		return visitor.VisitUnit()
	case TokenKindSeqStart:
		return visitor.VisitSeq(&seqAccess{d: d, length: t.Len})
	default:
		return fmt.Errorf("%w: expected SeqStart or Unit, got %s", ErrUnexpectedToken, t)
	}
}

// decodeItem decodes the next key, value or element into dest
func (d *Deserializer) decodeItem(dest any) error {
	if tmp, ok := serde.AsDeserializable(dest); ok {
		return tmp.Deserialize(d)
	}
	t, err := d.next()
	if err != nil {
		return err
	}
	if t.Kind != TokenKindValue {
		return fmt.Errorf("%w: expected Value, got %s", ErrUnexpectedToken, t)
	}
	return assign(dest, t.Value)
}

func assign(dest any, value any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("destination must be a non-nil pointer, got %T", dest)
	}
	target := rv.Elem()
	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	src := reflect.ValueOf(value)
	if !src.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("%w: cannot assign %T to %s", ErrTypeMismatch, value, target.Type())
	}
	target.Set(src)
	return nil
}

func hint(length int) (int, bool) {
	if length < 0 {
		return 0, false
	}
	return length, true
}

type mapAccess struct {
	d      *Deserializer
	length int
}

func (a *mapAccess) SizeHint() (int, bool) {
	return hint(a.length)
}

func (a *mapAccess) NextEntry(key any, value any) (bool, error) {
	t, err := a.d.peek()
	if err != nil {
		return false, err
	}
	if t.Kind == TokenKindMapEnd {
		return false, nil
	}
	if err := a.d.decodeItem(key); err != nil {
		return false, err
	}
	if err := a.d.decodeItem(value); err != nil {
		return false, err
	}
	return true, nil
}

func (a *mapAccess) End() error {
	return a.d.expect(TokenKindMapEnd)
}

type seqAccess struct {
	d      *Deserializer
	length int
}

func (a *seqAccess) SizeHint() (int, bool) {
	return hint(a.length)
}

func (a *seqAccess) NextElement(elem any) (bool, error) {
	t, err := a.d.peek()
	if err != nil {
		return false, err
	}
	if t.Kind == TokenKindSeqEnd {
		return false, nil
	}
	if err := a.d.decodeItem(elem); err != nil {
		return false, err
	}
	return true, nil
}

func (a *seqAccess) End() error {
	return a.d.expect(TokenKindSeqEnd)
}
