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

package cbor

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blinklabs-io/linearmap/serde"
	_cbor "github.com/fxamacker/cbor/v2"
)

var (
	ErrMaxNestedLevels = errors.New("exceeded max nested levels")
	ErrExtraneousData  = errors.New("extraneous data after CBOR item")
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Uses sync.Once for thread-safe lazy initialization.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			MaxNestedLevels:   DefaultMaxNestedLevels,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first CBOR item in dataBytes into dest and returns the
// number of bytes read
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), err
}

// Unmarshal decodes the CBOR item in data into v through the serde protocol
func Unmarshal(data []byte, v serde.Deserializable, opts ...DecoderOptionFunc) error {
	d := &decoder{
		data:   data,
		config: newDecoderConfig(opts...),
	}
	if err := v.Deserialize(d); err != nil {
		return err
	}
	return d.checkTrailing()
}

// decoder walks a CBOR buffer, parsing container headers itself and handing
// everything else to the element decoder
type decoder struct {
	data   []byte
	pos    int
	depth  int
	config decoderConfig
}

func (d *decoder) logger() *slog.Logger {
	return d.config.logger
}

func (d *decoder) enter() error {
	if d.depth >= d.config.maxNestedLevels {
		return fmt.Errorf("%w: %d", ErrMaxNestedLevels, d.config.maxNestedLevels)
	}
	d.depth++
	return nil
}

func (d *decoder) leave() {
	d.depth--
}

// checkTrailing rejects bytes after the top-level item. Containers call it
// before handing their value to the visitor, so a rejected buffer never
// reaches the destination.
func (d *decoder) checkTrailing() error {
	if d.depth > 1 || d.pos == len(d.data) {
		return nil
	}
	return fmt.Errorf("%w: %d bytes", ErrExtraneousData, len(d.data)-d.pos)
}

// skipTag consumes an optional tag in front of a container
func (d *decoder) skipTag(tagNumber uint64) {
	if n := skipTag(d.data[d.pos:], tagNumber); n > 0 {
		d.logger().Debug(
			"skipping CBOR tag",
			"component", "cbor",
			"tag", tagNumber,
			"offset", d.pos,
		)
		d.pos += n
	}
}

// visitUnit consumes a null or undefined item, if there is one
func (d *decoder) visitUnit() bool {
	switch d.data[d.pos] {
	case CborNull, CborUndefined:
		d.logger().Debug(
			"decoding unit as empty container",
			"component", "cbor",
			"offset", d.pos,
		)
		d.pos++
		return true
	}
	return false
}

// openContainer parses a container header of the given major type at the
// current position
func (d *decoder) openContainer(majorType uint8) (*containerAccess, error) {
	h, err := parseHeader(d.data[d.pos:])
	if err != nil {
		return nil, err
	}
	if h.majorType != majorType {
		return nil, fmt.Errorf(
			"expected major type 0x%x, got 0x%x at offset %d",
			majorType,
			h.majorType,
			d.pos,
		)
	}
	d.pos += h.length
	ret := &containerAccess{
		d:          d,
		indefinite: h.indefinite,
	}
	if h.indefinite {
		d.logger().Debug(
			"decoding indefinite-length container",
			"component", "cbor",
			"type", majorType,
			"offset", d.pos,
		)
		return ret, nil
	}
	// Each entry takes at least one byte (two for maps), so a larger count is
	// always truncated data
	minSize := h.arg
	if majorType == CborTypeMap {
		minSize *= 2
	}
	if h.arg > uint64(len(d.data)) || minSize > uint64(len(d.data)-d.pos) {
		return nil, fmt.Errorf(
			"%w: container declares %d items",
			ErrUnexpectedEnd,
			h.arg,
		)
	}
	ret.remaining = int(h.arg)
	ret.declared = int(h.arg)
	return ret, nil
}

func (d *decoder) DeserializeMap(visitor serde.MapVisitor) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()
	if d.pos >= len(d.data) {
		return ErrUnexpectedEnd
	}
	d.skipTag(CborTagMap)
	if d.pos >= len(d.data) {
		return ErrUnexpectedEnd
	}
	if d.visitUnit() {
		if err := d.checkTrailing(); err != nil {
			return err
		}
		return visitor.VisitUnit()
	}
	access, err := d.openContainer(CborTypeMap)
	if err != nil {
		return err
	}
	return visitor.VisitMap(&mapAccess{access})
}

func (d *decoder) DeserializeSeq(visitor serde.SeqVisitor) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()
	if d.pos >= len(d.data) {
		return ErrUnexpectedEnd
	}
	d.skipTag(CborTagSet)
	if d.pos >= len(d.data) {
		return ErrUnexpectedEnd
	}
	if d.visitUnit() {
		if err := d.checkTrailing(); err != nil {
			return err
		}
		return visitor.VisitUnit()
	}
	access, err := d.openContainer(CborTypeArray)
	if err != nil {
		return err
	}
	return visitor.VisitSeq(&seqAccess{access})
}

// decodeItem decodes the next key, value or element into dest
func (d *decoder) decodeItem(dest any) error {
	if tmp, ok := serde.AsDeserializable(dest); ok {
		return tmp.Deserialize(d)
	}
	if d.pos >= len(d.data) {
		return ErrUnexpectedEnd
	}
	n, err := Decode(d.data[d.pos:], dest)
	if err != nil {
		return err
	}
	d.pos += n
	return nil
}

// containerAccess tracks the progress through a map or array
type containerAccess struct {
	d          *decoder
	declared   int
	remaining  int
	indefinite bool
}

func (c *containerAccess) SizeHint() (int, bool) {
	if c.indefinite {
		return 0, false
	}
	return c.declared, true
}

// more reports whether another item follows
func (c *containerAccess) more() (bool, error) {
	if !c.indefinite {
		return c.remaining > 0, nil
	}
	if c.d.pos >= len(c.d.data) {
		return false, ErrUnexpectedEnd
	}
	return c.d.data[c.d.pos] != CborBreak, nil
}

func (c *containerAccess) End() error {
	if !c.indefinite {
		if c.remaining > 0 {
			return fmt.Errorf("container has %d unread items", c.remaining)
		}
		return c.d.checkTrailing()
	}
	if c.d.pos >= len(c.d.data) {
		return ErrUnexpectedEnd
	}
	if c.d.data[c.d.pos] != CborBreak {
		return fmt.Errorf("expected break at offset %d", c.d.pos)
	}
	c.d.pos++
	return c.d.checkTrailing()
}

type mapAccess struct {
	*containerAccess
}

func (m *mapAccess) NextEntry(key any, value any) (bool, error) {
	more, err := m.more()
	if err != nil || !more {
		return false, err
	}
	if err := m.d.decodeItem(key); err != nil {
		return false, err
	}
	if err := m.d.decodeItem(value); err != nil {
		return false, err
	}
	m.remaining--
	return true, nil
}

type seqAccess struct {
	*containerAccess
}

func (s *seqAccess) NextElement(elem any) (bool, error) {
	more, err := s.more()
	if err != nil || !more {
		return false, err
	}
	if err := s.d.decodeItem(elem); err != nil {
		return false, err
	}
	s.remaining--
	return true, nil
}
