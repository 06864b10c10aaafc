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

// Package cbor implements the serde protocol for CBOR (RFC 8949).
//
// Container framing (map and array headers, tags, breaks) is written and
// parsed here so that entry order is exactly the container's iteration order.
// Individual keys, values and elements are handed to
// github.com/fxamacker/cbor/v2 unless they implement serde.Serializable or
// serde.Deserializable themselves.
//
// # Wire shapes
//
//   - Map: major type 5, definite length equal to the declared length
//   - Set: major type 4, optionally wrapped in tag 258
//   - Unknown length, or WithIndefiniteLength(true): 0xbf/0x9f ... 0xff
//   - Unit: null (0xf6); undefined (0xf7) is also accepted on decode
//
// # Decoding Gotchas
//
//  1. A definite header is an exact size hint; an indefinite header gives none
//  2. A definite container must be fully read before End() succeeds
//  3. Unmarshal rejects trailing bytes after the top-level item
//  4. []byte is not comparable, so use ByteString for bytestring keys
package cbor
