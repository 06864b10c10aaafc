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

package serde_test

import (
	"testing"

	"github.com/blinklabs-io/linearmap/serde"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitValue serializes as the unit token and records whether it was deserialized
type unitValue struct {
	seen bool
}

func (u *unitValue) Serialize(s serde.Serializer) error {
	return s.SerializeUnit()
}

func (u *unitValue) Deserialize(d serde.Deserializer) error {
	u.seen = true
	return nil
}

func TestCautiousSizeHint(t *testing.T) {
	testDefs := []struct {
		hint     int
		expected int
	}{
		{hint: -5, expected: 0},
		{hint: 0, expected: 0},
		{hint: 17, expected: 17},
		{hint: serde.MaxCautiousSizeHint, expected: serde.MaxCautiousSizeHint},
		{hint: 1 << 40, expected: serde.MaxCautiousSizeHint},
	}
	for _, testDef := range testDefs {
		assert.Equal(
			t,
			testDef.expected,
			serde.CautiousSizeHint(testDef.hint),
			"hint %d",
			testDef.hint,
		)
	}
}

func TestAsSerializable(t *testing.T) {
	_, ok := serde.AsSerializable(nil)
	assert.False(t, ok)
	_, ok = serde.AsSerializable(42)
	assert.False(t, ok)
	tmpPtr := &unitValue{}
	s, ok := serde.AsSerializable(tmpPtr)
	require.True(t, ok)
	assert.Same(t, tmpPtr, s)
	// The method set of the pointer type is used for plain values
	s, ok = serde.AsSerializable(unitValue{})
	require.True(t, ok)
	assert.IsType(t, &unitValue{}, s)
}

func TestAsDeserializable(t *testing.T) {
	_, ok := serde.AsDeserializable(nil)
	assert.False(t, ok)
	var tmpInt int
	_, ok = serde.AsDeserializable(&tmpInt)
	assert.False(t, ok)
	tmpVal := &unitValue{}
	d, ok := serde.AsDeserializable(tmpVal)
	require.True(t, ok)
	assert.Same(t, tmpVal, d)
	// A nil inner pointer is allocated
	var tmpPtr *unitValue
	d, ok = serde.AsDeserializable(&tmpPtr)
	require.True(t, ok)
	require.NotNil(t, tmpPtr)
	require.NoError(t, d.Deserialize(nil))
	assert.True(t, tmpPtr.seen)
	// An existing inner pointer is reused
	existing := &unitValue{}
	tmpPtr = existing
	d, ok = serde.AsDeserializable(&tmpPtr)
	require.True(t, ok)
	assert.Same(t, existing, d)
	// A nil pointer to a pointer cannot be used
	var nilPtrPtr **unitValue
	_, ok = serde.AsDeserializable(nilPtrPtr)
	assert.False(t, ok)
}
