// Copyright 2023 Blink Labs Software
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
	"fmt"
	"strings"
)

// DumpCborStructure generates an indented string representing the CBOR item in
// data for debugging purposes. Unlike decoding into a Go map, map entries are
// listed in the order they appear on the wire.
func DumpCborStructure(data []byte, prefix string) (string, error) {
	var ret strings.Builder
	n, err := dumpItem(&ret, data, prefix, 0)
	if err != nil {
		return "", err
	}
	if n != len(data) {
		return "", fmt.Errorf("%w: %d bytes", ErrExtraneousData, len(data)-n)
	}
	return ret.String(), nil
}

// dumpItem writes a single item and returns the number of bytes it occupies
func dumpItem(ret *strings.Builder, data []byte, prefix string, depth int) (int, error) {
	if depth > DefaultMaxNestedLevels {
		return 0, fmt.Errorf("%w: %d", ErrMaxNestedLevels, DefaultMaxNestedLevels)
	}
	h, err := parseHeader(data)
	if err != nil {
		return 0, err
	}
	newPrefix := prefix + "  "
	switch h.majorType {
	case CborTypeArray, CborTypeMap:
		isMap := h.majorType == CborTypeMap
		if isMap {
			ret.WriteString(prefix + "{\n")
		} else {
			ret.WriteString(prefix + "[\n")
		}
		pos := h.length
		for i := uint64(0); ; i++ {
			if h.indefinite {
				if pos >= len(data) {
					return 0, ErrUnexpectedEnd
				}
				if data[pos] == CborBreak {
					pos++
					break
				}
			} else if i >= h.arg {
				break
			}
			if !isMap {
				n, err := dumpItem(ret, data[pos:], newPrefix, depth+1)
				if err != nil {
					return 0, err
				}
				pos += n
				continue
			}
			// Keys are rendered separately so that the trailing comma can be
			// replaced with an arrow pointing at the value
			var key strings.Builder
			n, err := dumpItem(&key, data[pos:], newPrefix, depth+1)
			if err != nil {
				return 0, err
			}
			pos += n
			ret.WriteString(strings.TrimSuffix(key.String(), ",\n") + " =>\n")
			n, err = dumpItem(ret, data[pos:], newPrefix+"  ", depth+1)
			if err != nil {
				return 0, err
			}
			pos += n
		}
		if isMap {
			ret.WriteString(prefix + "},\n")
		} else {
			ret.WriteString(prefix + "],\n")
		}
		return pos, nil
	case CborTypeTag:
		fmt.Fprintf(ret, "%stag %d (\n", prefix, h.arg)
		n, err := dumpItem(ret, data[h.length:], newPrefix, depth+1)
		if err != nil {
			return 0, err
		}
		ret.WriteString(prefix + "),\n")
		return h.length + n, nil
	}
	var tmpValue any
	n, err := Decode(data, &tmpValue)
	if err != nil {
		return 0, err
	}
	switch v := tmpValue.(type) {
	case int64, uint64:
		fmt.Fprintf(ret, "%s0x%x (%d),\n", prefix, v, v)
	case []byte:
		fmt.Fprintf(ret, "%s<bytes> (length %d),\n", prefix, len(v))
	default:
		fmt.Fprintf(ret, "%s%#v,\n", prefix, v)
	}
	return n, nil
}
