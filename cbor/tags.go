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

const (
	// Useful tag numbers
	// https://github.com/input-output-hk/cbor-sets-spec/blob/master/CBOR_SETS.md
	CborTagSet = 258
	// https://github.com/shanewholloway/js-cbor-codec/blob/master/docs/CBOR-259-spec--explicit-maps.md
	CborTagMap = 259
)

// skipTag advances past a tag header with the given number at the start of
// data, if there is one. It returns the number of bytes skipped.
func skipTag(data []byte, tagNumber uint64) int {
	if len(data) == 0 || data[0]&CborTypeMask != CborTypeTag {
		return 0
	}
	h, err := parseHeader(data)
	if err != nil || h.arg != tagNumber {
		return 0
	}
	return h.length
}
