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

package json

import (
	"bytes"
	_json "encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/blinklabs-io/linearmap/serde"
)

// Unmarshal decodes the JSON value in data into v through the serde protocol
func Unmarshal(data []byte, v serde.Deserializable, opts ...DecoderOptionFunc) error {
	d := newDecoder(bytes.NewReader(data), opts...)
	if err := v.Deserialize(d); err != nil {
		return err
	}
	return d.checkTrailing()
}

type decoder struct {
	dec    *_json.Decoder
	depth  int
	done   bool
	config decoderConfig
}

// checkTrailing rejects anything but whitespace after the top-level value.
// Containers call it before handing their value to the visitor, so a rejected
// document never reaches the destination.
func (d *decoder) checkTrailing() error {
	if d.depth > 1 || d.done {
		return nil
	}
	d.done = true
	tok, err := d.dec.Token()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExtraneousData, err)
	default:
		return fmt.Errorf(
			"%w: %v at offset %d",
			ErrExtraneousData,
			tok,
			d.dec.InputOffset(),
		)
	}
}

func newDecoder(r io.Reader, opts ...DecoderOptionFunc) *decoder {
	d := &decoder{
		dec:    _json.NewDecoder(r),
		config: newDecoderConfig(opts...),
	}
	if d.config.useNumber {
		d.dec.UseNumber()
	}
	return d
}

// open reads the token that starts a container. It returns true for null
func (d *decoder) open(delim _json.Delim) (bool, error) {
	tok, err := d.dec.Token()
	if err != nil {
		return false, err
	}
	if tok == nil {
		d.config.logger.Debug(
			"decoding null as empty container",
			"component", "json",
			"offset", d.dec.InputOffset(),
		)
		return true, nil
	}
	if tmpDelim, ok := tok.(_json.Delim); ok && tmpDelim == delim {
		return false, nil
	}
	return false, fmt.Errorf(
		"expected %q or null, got %v at offset %d",
		delim,
		tok,
		d.dec.InputOffset(),
	)
}

func (d *decoder) close(delim _json.Delim) error {
	tok, err := d.dec.Token()
	if err != nil {
		return err
	}
	if tmpDelim, ok := tok.(_json.Delim); !ok || tmpDelim != delim {
		return fmt.Errorf("expected %q, got %v", delim, tok)
	}
	return nil
}

func (d *decoder) DeserializeMap(visitor serde.MapVisitor) error {
	d.depth++
	defer func() { d.depth-- }()
	isNull, err := d.open('{')
	if err != nil {
		return err
	}
	if isNull {
		if err := d.checkTrailing(); err != nil {
			return err
		}
		return visitor.VisitUnit()
	}
	return visitor.VisitMap(&mapAccess{d: d})
}

func (d *decoder) DeserializeSeq(visitor serde.SeqVisitor) error {
	d.depth++
	defer func() { d.depth-- }()
	isNull, err := d.open('[')
	if err != nil {
		return err
	}
	if isNull {
		if err := d.checkTrailing(); err != nil {
			return err
		}
		return visitor.VisitUnit()
	}
	return visitor.VisitSeq(&seqAccess{d: d})
}

func (d *decoder) decodeItem(dest any) error {
	if tmp, ok := serde.AsDeserializable(dest); ok {
		return tmp.Deserialize(d)
	}
	return d.dec.Decode(dest)
}

// decodeKey decodes an object key into dest. Keys are always strings on the
// wire, so a key that fails to decode as a string is retried as the bare
// JSON literal it was quoted from
func (d *decoder) decodeKey(dest any) error {
	if _, ok := serde.AsDeserializable(dest); ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedKey, dest)
	}
	tok, err := d.dec.Token()
	if err != nil {
		return err
	}
	key, ok := tok.(string)
	if !ok {
		return fmt.Errorf("expected object key, got %v", tok)
	}
	quoted, err := _json.Marshal(key)
	if err != nil {
		return err
	}
	if err := _json.Unmarshal(quoted, dest); err == nil {
		return nil
	}
	if err := _json.Unmarshal([]byte(key), dest); err != nil {
		return fmt.Errorf("decode object key %q: %w", key, err)
	}
	return nil
}

type mapAccess struct {
	d *decoder
}

func (m *mapAccess) SizeHint() (int, bool) {
	return 0, false
}

func (m *mapAccess) NextEntry(key any, value any) (bool, error) {
	if !m.d.dec.More() {
		return false, nil
	}
	if err := m.d.decodeKey(key); err != nil {
		return false, err
	}
	if err := m.d.decodeItem(value); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mapAccess) End() error {
	if err := m.d.close('}'); err != nil {
		return err
	}
	return m.d.checkTrailing()
}

type seqAccess struct {
	d *decoder
}

func (s *seqAccess) SizeHint() (int, bool) {
	return 0, false
}

func (s *seqAccess) NextElement(elem any) (bool, error) {
	if !s.d.dec.More() {
		return false, nil
	}
	if err := s.d.decodeItem(elem); err != nil {
		return false, err
	}
	return true, nil
}

func (s *seqAccess) End() error {
	if err := s.d.close(']'); err != nil {
		return err
	}
	return s.d.checkTrailing()
}
