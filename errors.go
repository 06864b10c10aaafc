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

package linearmap

import (
	"errors"
)

// ErrNoValue is returned when a deserializer reports success without calling
// back into the visitor
var ErrNoValue = errors.New("deserializer produced no value")

// ErrNilReceiver is returned when decoding into a nil *Map or *Set
var ErrNilReceiver = errors.New("decode into nil receiver")

// EncodeError is returned when the format fails while a container is being
// serialized. Err is the format's error, unchanged.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "linearmap: encode failed: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the format fails while a container is being
// deserialized. Err is the format's error, unchanged.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "linearmap: decode failed: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newEncodeError wraps err unless it already came from a nested container
func newEncodeError(err error) error {
	var tmpErr *EncodeError
	if errors.As(err, &tmpErr) {
		return err
	}
	return &EncodeError{Err: err}
}

func newDecodeError(err error) error {
	var tmpErr *DecodeError
	if errors.As(err, &tmpErr) {
		return err
	}
	return &DecodeError{Err: err}
}
