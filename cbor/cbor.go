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
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	_cbor "github.com/fxamacker/cbor/v2"
)

const (
	CborTypeUint       uint8 = 0x00
	CborTypeByteString uint8 = 0x40
	CborTypeTextString uint8 = 0x60
	CborTypeArray      uint8 = 0x80
	CborTypeMap        uint8 = 0xa0
	CborTypeTag        uint8 = 0xc0
	CborTypeSimple     uint8 = 0xe0

	// Only the top 3 bits are used to specify the type
	CborTypeMask uint8 = 0xe0

	// Max value able to be stored in a single byte without type prefix
	CborMaxUintSimple uint8 = 0x17

	// Additional info value for indefinite-length items
	CborIndefinite uint8 = 0x1f

	CborFalse     uint8 = 0xf4
	CborTrue      uint8 = 0xf5
	CborNull      uint8 = 0xf6
	CborUndefined uint8 = 0xf7
	CborBreak     uint8 = 0xff
)

var ErrUnexpectedEnd = errors.New("unexpected end of data")

// Create an alias for RawMessage for convenience
type RawMessage = _cbor.RawMessage

// Alias for Tag for convenience
type Tag = _cbor.Tag

// header describes the initial bytes of a CBOR data item
type header struct {
	majorType  uint8
	arg        uint64
	length     int
	indefinite bool
}

// parseHeader decodes the type and argument at the start of data
func parseHeader(data []byte) (header, error) {
	if len(data) == 0 {
		return header{}, ErrUnexpectedEnd
	}
	ret := header{
		majorType: data[0] & CborTypeMask,
	}
	additionalInfo := data[0] & 0x1f
	switch {
	case additionalInfo <= CborMaxUintSimple:
		ret.arg = uint64(additionalInfo)
		ret.length = 1
	case additionalInfo == 24:
		if len(data) < 2 {
			return header{}, ErrUnexpectedEnd
		}
		ret.arg = uint64(data[1])
		ret.length = 2
	case additionalInfo == 25:
		if len(data) < 3 {
			return header{}, ErrUnexpectedEnd
		}
		ret.arg = uint64(binary.BigEndian.Uint16(data[1:3]))
		ret.length = 3
	case additionalInfo == 26:
		if len(data) < 5 {
			return header{}, ErrUnexpectedEnd
		}
		ret.arg = uint64(binary.BigEndian.Uint32(data[1:5]))
		ret.length = 5
	case additionalInfo == 27:
		if len(data) < 9 {
			return header{}, ErrUnexpectedEnd
		}
		ret.arg = binary.BigEndian.Uint64(data[1:9])
		ret.length = 9
	case additionalInfo == CborIndefinite:
		switch ret.majorType {
		case CborTypeByteString, CborTypeTextString, CborTypeArray, CborTypeMap:
			ret.indefinite = true
			ret.length = 1
		default:
			return header{}, fmt.Errorf("invalid indefinite length for major type 0x%x", ret.majorType)
		}
	default:
		return header{}, fmt.Errorf("invalid additional info: %d", additionalInfo)
	}
	return ret, nil
}

// appendHeader appends the shortest encoding of a data item header
func appendHeader(buf []byte, majorType uint8, arg uint64) []byte {
	switch {
	case arg <= uint64(CborMaxUintSimple):
		return append(buf, majorType|uint8(arg))
	case arg <= math.MaxUint8:
		return append(buf, majorType|24, uint8(arg))
	case arg <= math.MaxUint16:
		return binary.BigEndian.AppendUint16(append(buf, majorType|25), uint16(arg))
	case arg <= math.MaxUint32:
		return binary.BigEndian.AppendUint32(append(buf, majorType|26), uint32(arg))
	default:
		return binary.BigEndian.AppendUint64(append(buf, majorType|27), arg)
	}
}

// containerInfo extracts the item count and header size of a container of the given major type.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func containerInfo(data []byte, majorType uint8) (int, uint32, bool) {
	h, err := parseHeader(data)
	if err != nil || h.majorType != majorType {
		return -1, 0, false
	}
	if h.indefinite {
		return 0, 1, true
	}
	// Use MaxInt32 to prevent overflow on 32-bit systems
	if h.arg > uint64(math.MaxInt32) {
		return -1, 0, false
	}
	return int(h.arg), uint32(h.length), false
}

// ArrayInfo extracts array item count and header size from CBOR array data.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func ArrayInfo(data []byte) (int, uint32, bool) {
	return containerInfo(data, CborTypeArray)
}

// MapInfo extracts map item count and header size from CBOR map data.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func MapInfo(data []byte) (int, uint32, bool) {
	return containerInfo(data, CborTypeMap)
}
