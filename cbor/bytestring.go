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
	"encoding/hex"
)

// ByteString is a comparable wrapper for bytestrings, usable as a map key or
// set element. It encodes as a CBOR bytestring and as hex in text formats.
type ByteString struct {
	// We use a string because []byte isn't comparable
	data string
}

func NewByteString(data []byte) ByteString {
	return ByteString{
		data: string(data),
	}
}

func (bs ByteString) MarshalCBOR() ([]byte, error) {
	return Encode([]byte(bs.data))
}

func (bs *ByteString) UnmarshalCBOR(data []byte) error {
	tmpValue := []byte{}
	if _, err := Decode(data, &tmpValue); err != nil {
		return err
	}
	bs.data = string(tmpValue)
	return nil
}

// MarshalText returns the hex encoding, which lets JSON and YAML use a
// ByteString as an object key
func (bs ByteString) MarshalText() ([]byte, error) {
	return []byte(bs.String()), nil
}

func (bs *ByteString) UnmarshalText(text []byte) error {
	tmpValue, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	bs.data = string(tmpValue)
	return nil
}

func (bs ByteString) Len() int {
	return len(bs.data)
}

func (bs ByteString) Bytes() []byte {
	return []byte(bs.data)
}

func (bs ByteString) String() string {
	return hex.EncodeToString([]byte(bs.data))
}
