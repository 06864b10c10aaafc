// Copyright 2024 Blink Labs Software
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

package cbor

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/blinklabs-io/linearmap/serde"
	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	cachedEncMode     _cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once
)

// getEncMode returns a cached EncMode, initializing it on first use
func getEncMode() (_cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			// Make sure that native Go maps have ordered keys
			Sort: _cbor.SortCoreDeterministic,
		}
		cachedEncMode, cachedEncModeErr = opts.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

// Encode encodes a plain Go value to CBOR
func Encode(data any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	enc := em.NewEncoder(buf)
	err = enc.Encode(data)
	return buf.Bytes(), err
}

// Marshal encodes v to CBOR through the serde protocol
func Marshal(v serde.Serializable, opts ...EncoderOptionFunc) ([]byte, error) {
	e := &encoder{
		config: newEncoderConfig(opts...),
	}
	if err := v.Serialize(e); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	buf    []byte
	config encoderConfig
}

func (e *encoder) encodeItem(v any) error {
	if tmp, ok := serde.AsSerializable(v); ok {
		return tmp.Serialize(e)
	}
	data, err := Encode(v)
	if err != nil {
		return err
	}
	e.buf = append(e.buf, data...)
	return nil
}

// openContainer writes the tag and length header for a map or array and
// reports whether the container uses indefinite length
func (e *encoder) openContainer(majorType uint8, tag bool, tagNumber uint64, length int) bool {
	if tag {
		e.buf = appendHeader(e.buf, CborTypeTag, tagNumber)
	}
	if length < 0 || e.config.indefinite {
		e.buf = append(e.buf, majorType|CborIndefinite)
		return true
	}
	e.buf = appendHeader(e.buf, majorType, uint64(length))
	return false
}

func (e *encoder) SerializeMap(length int) (serde.MapSerializer, error) {
	indefinite := e.openContainer(CborTypeMap, e.config.mapTag, CborTagMap, length)
	return &mapSerializer{
		e:          e,
		declared:   length,
		indefinite: indefinite,
	}, nil
}

func (e *encoder) SerializeSeq(length int) (serde.SeqSerializer, error) {
	indefinite := e.openContainer(CborTypeArray, e.config.setTag, CborTagSet, length)
	return &seqSerializer{
		e:          e,
		declared:   length,
		indefinite: indefinite,
	}, nil
}

func (e *encoder) SerializeUnit() error {
	e.buf = append(e.buf, CborNull)
	return nil
}

type mapSerializer struct {
	e          *encoder
	declared   int
	written    int
	indefinite bool
}

func (m *mapSerializer) SerializeKey(key any) error {
	return m.e.encodeItem(key)
}

func (m *mapSerializer) SerializeValue(value any) error {
	m.written++
	return m.e.encodeItem(value)
}

func (m *mapSerializer) End() error {
	if m.indefinite {
		m.e.buf = append(m.e.buf, CborBreak)
		return nil
	}
	// A definite-length header cannot be fixed up afterward
	if m.written != m.declared {
		return fmt.Errorf(
			"map declared %d entries but %d were written",
			m.declared,
			m.written,
		)
	}
	return nil
}

type seqSerializer struct {
	e          *encoder
	declared   int
	written    int
	indefinite bool
}

func (s *seqSerializer) SerializeElement(elem any) error {
	s.written++
	return s.e.encodeItem(elem)
}

func (s *seqSerializer) End() error {
	if s.indefinite {
		s.e.buf = append(s.e.buf, CborBreak)
		return nil
	}
	if s.written != s.declared {
		return fmt.Errorf(
			"sequence declared %d elements but %d were written",
			s.declared,
			s.written,
		)
	}
	return nil
}
