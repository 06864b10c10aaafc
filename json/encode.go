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
	"fmt"

	"github.com/blinklabs-io/linearmap/serde"
)

// Marshal encodes v to JSON through the serde protocol
func Marshal(v serde.Serializable, opts ...EncoderOptionFunc) ([]byte, error) {
	e := &encoder{
		config: newEncoderConfig(opts...),
	}
	if err := v.Serialize(e); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	config encoderConfig
}

// encodeValue encodes a plain Go value without the trailing newline that
// json.Encoder adds
func (e *encoder) encodeValue(v any) ([]byte, error) {
	var tmpBuf bytes.Buffer
	enc := _json.NewEncoder(&tmpBuf)
	enc.SetEscapeHTML(e.config.escapeHTML)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(tmpBuf.Bytes(), []byte("\n")), nil
}

func (e *encoder) encodeItem(v any) error {
	if tmp, ok := serde.AsSerializable(v); ok {
		return tmp.Serialize(e)
	}
	data, err := e.encodeValue(v)
	if err != nil {
		return err
	}
	e.buf.Write(data)
	return nil
}

// encodeKey writes an object key. Numbers and booleans are quoted
func (e *encoder) encodeKey(key any) error {
	if _, ok := serde.AsSerializable(key); ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}
	data, err := e.encodeValue(key)
	if err != nil {
		return err
	}
	switch {
	case len(data) == 0:
		return fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	case data[0] == '"':
		e.buf.Write(data)
	case data[0] == '-', data[0] >= '0' && data[0] <= '9', string(data) == "true", string(data) == "false":
		quoted, err := e.encodeValue(string(data))
		if err != nil {
			return err
		}
		e.buf.Write(quoted)
	default:
		return fmt.Errorf("%w: %T encodes to %s", ErrUnsupportedKey, key, data)
	}
	return nil
}

func (e *encoder) SerializeMap(length int) (serde.MapSerializer, error) {
	e.buf.WriteByte('{')
	return &mapSerializer{e: e}, nil
}

func (e *encoder) SerializeSeq(length int) (serde.SeqSerializer, error) {
	e.buf.WriteByte('[')
	return &seqSerializer{e: e}, nil
}

func (e *encoder) SerializeUnit() error {
	e.buf.WriteString("null")
	return nil
}

type mapSerializer struct {
	e     *encoder
	count int
}

func (m *mapSerializer) SerializeKey(key any) error {
	if m.count > 0 {
		m.e.buf.WriteByte(',')
	}
	m.count++
	return m.e.encodeKey(key)
}

func (m *mapSerializer) SerializeValue(value any) error {
	m.e.buf.WriteByte(':')
	return m.e.encodeItem(value)
}

func (m *mapSerializer) End() error {
	m.e.buf.WriteByte('}')
	return nil
}

type seqSerializer struct {
	e     *encoder
	count int
}

func (s *seqSerializer) SerializeElement(elem any) error {
	if s.count > 0 {
		s.e.buf.WriteByte(',')
	}
	s.count++
	return s.e.encodeItem(elem)
}

func (s *seqSerializer) End() error {
	s.e.buf.WriteByte(']')
	return nil
}
