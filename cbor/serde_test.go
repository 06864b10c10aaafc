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

package cbor_test

import (
	"bytes"
	"encoding/hex"
	"log/slog"
	"slices"
	"testing"

	"github.com/blinklabs-io/linearmap"
	"github.com/blinklabs-io/linearmap/cbor"
	"github.com/blinklabs-io/linearmap/internal/test"
	"github.com/blinklabs-io/linearmap/serde"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeIntMap() *linearmap.Map[rune, int] {
	m := linearmap.New[rune, int]()
	m.Insert('b', 20)
	m.Insert('a', 10)
	m.Insert('c', 30)
	return m
}

func runeSet() *linearmap.Set[rune] {
	s := linearmap.NewSet[rune]()
	s.Insert('b')
	s.Insert('a')
	s.Insert('c')
	return s
}

func TestMarshalMap(t *testing.T) {
	testDefs := []struct {
		name     string
		value    serde.Serializable
		opts     []cbor.EncoderOptionFunc
		expected string
	}{
		{
			name:     "empty map",
			value:    linearmap.New[rune, int](),
			expected: "a0",
		},
		{
			name:     "insertion order",
			value:    runeIntMap(),
			expected: "a318621418610a1863181e",
		},
		{
			name:     "map tag",
			value:    runeIntMap(),
			opts:     []cbor.EncoderOptionFunc{cbor.WithMapTag(true)},
			expected: "d90103a318621418610a1863181e",
		},
		{
			name:     "indefinite length",
			value:    runeIntMap(),
			opts:     []cbor.EncoderOptionFunc{cbor.WithIndefiniteLength(true)},
			expected: "bf18621418610a1863181eff",
		},
		{
			name:     "empty set",
			value:    linearmap.NewSet[rune](),
			expected: "80",
		},
		{
			name:     "set",
			value:    runeSet(),
			expected: "83186218611863",
		},
		{
			name:     "set tag",
			value:    runeSet(),
			opts:     []cbor.EncoderOptionFunc{cbor.WithSetTag(true)},
			expected: "d9010283186218611863",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data, err := cbor.Marshal(testDef.value, testDef.opts...)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, hex.EncodeToString(data))
		})
	}
}

func TestUnmarshalMap(t *testing.T) {
	testDefs := []struct {
		name     string
		cborHex  string
		expected []rune
	}{
		{name: "definite", cborHex: "a3 1862 14 1861 0a 1863 181e", expected: []rune{'b', 'a', 'c'}},
		{name: "indefinite", cborHex: "bf18621418610a1863181eff", expected: []rune{'b', 'a', 'c'}},
		{name: "map tag", cborHex: "d90103a318621418610a1863181e", expected: []rune{'b', 'a', 'c'}},
		{name: "empty", cborHex: "a0", expected: []rune{}},
		{name: "null", cborHex: "f6", expected: []rune{}},
		{name: "undefined", cborHex: "f7", expected: []rune{}},
		// First-seen position, last-seen value
		{name: "duplicate key", cborHex: "a3 1862 14 1861 0a 1862 1863", expected: []rune{'b', 'a'}},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			tmpMap := linearmap.New[rune, int]()
			err := cbor.Unmarshal(test.DecodeHexString(testDef.cborHex), tmpMap)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, slices.AppendSeq([]rune{}, tmpMap.Keys()))
		})
	}
}

func TestUnmarshalDuplicateKeyValue(t *testing.T) {
	tmpMap := linearmap.New[rune, int]()
	err := cbor.Unmarshal(test.DecodeHexString("a318621418610a18621863"), tmpMap)
	require.NoError(t, err)
	val, ok := tmpMap.Get('b')
	assert.True(t, ok)
	assert.Equal(t, 99, val)
}

func TestRoundTripMap(t *testing.T) {
	m := runeIntMap()
	for _, opts := range [][]cbor.EncoderOptionFunc{
		nil,
		{cbor.WithMapTag(true)},
		{cbor.WithIndefiniteLength(true)},
	} {
		data, err := cbor.Marshal(m, opts...)
		require.NoError(t, err)
		tmpMap := linearmap.New[rune, int]()
		require.NoError(t, cbor.Unmarshal(data, tmpMap))
		assert.Equal(t, m.Entries(), tmpMap.Entries())
	}
}

func TestRoundTripSet(t *testing.T) {
	testDefs := []struct {
		cborHex  string
		expected []rune
	}{
		{cborHex: "83186218611863", expected: []rune{'b', 'a', 'c'}},
		{cborHex: "d9010283186218611863", expected: []rune{'b', 'a', 'c'}},
		{cborHex: "9f186218611863ff", expected: []rune{'b', 'a', 'c'}},
		{cborHex: "841862186118621863", expected: []rune{'b', 'a', 'c'}},
		{cborHex: "80", expected: []rune{}},
		{cborHex: "f6", expected: []rune{}},
	}
	for _, testDef := range testDefs {
		tmpSet := linearmap.NewSet[rune]()
		err := cbor.Unmarshal(test.DecodeHexString(testDef.cborHex), tmpSet)
		require.NoError(t, err, "decode %s", testDef.cborHex)
		assert.Equal(t, testDef.expected, tmpSet.Values(), "decode %s", testDef.cborHex)
	}
}

func TestNestedMap(t *testing.T) {
	inner := linearmap.New[string, int]()
	inner.Insert("y", 1)
	outer := linearmap.New[string, *linearmap.Map[string, int]]()
	outer.Insert("x", inner)
	data, err := cbor.Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, "a16178a1617901", hex.EncodeToString(data))
	tmpMap := linearmap.New[string, *linearmap.Map[string, int]]()
	require.NoError(t, cbor.Unmarshal(data, tmpMap))
	assert.Equal(t, outer, tmpMap)
}

func TestByteStringKeys(t *testing.T) {
	m := linearmap.New[cbor.ByteString, uint64]()
	m.Insert(cbor.NewByteString([]byte{0x01, 0x02}), 5)
	m.Insert(cbor.NewByteString([]byte{}), 6)
	data, err := cbor.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "a2420102054006", hex.EncodeToString(data))
	tmpMap := linearmap.New[cbor.ByteString, uint64]()
	require.NoError(t, cbor.Unmarshal(data, tmpMap))
	assert.Equal(t, m.Entries(), tmpMap.Entries())
}

func TestUnmarshalErrors(t *testing.T) {
	testDefs := []struct {
		name        string
		cborHex     string
		opts        []cbor.DecoderOptionFunc
		expectedErr error
	}{
		{name: "no data", cborHex: "", expectedErr: cbor.ErrUnexpectedEnd},
		{name: "truncated count", cborHex: "a31862", expectedErr: cbor.ErrUnexpectedEnd},
		{name: "missing break", cborHex: "bf6161a0", expectedErr: cbor.ErrUnexpectedEnd},
		{name: "trailing data", cborHex: "a000", expectedErr: cbor.ErrExtraneousData},
		{
			name:        "max nested levels",
			cborHex:     "a16178a1617901",
			opts:        []cbor.DecoderOptionFunc{cbor.WithMaxNestedLevels(1)},
			expectedErr: cbor.ErrMaxNestedLevels,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			tmpMap := linearmap.New[string, *linearmap.Map[string, int]]()
			err := cbor.Unmarshal(test.DecodeHexString(testDef.cborHex), tmpMap, testDef.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, testDef.expectedErr)
		})
	}
}

func TestUnmarshalWrongType(t *testing.T) {
	tmpMap := linearmap.New[rune, int]()
	tmpMap.Insert('z', 1)
	// An array is not a map
	err := cbor.Unmarshal(test.DecodeHexString("80"), tmpMap)
	var decodeErr *linearmap.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	// The receiver keeps its previous contents
	assert.Equal(t, 1, tmpMap.Len())
	// A text string key does not decode into a rune
	err = cbor.Unmarshal(test.DecodeHexString("a1616101"), tmpMap)
	require.ErrorAs(t, err, &decodeErr)
}

// shortMap declares more entries than it writes
type shortMap struct{}

func (shortMap) Serialize(s serde.Serializer) error {
	state, err := s.SerializeMap(2)
	if err != nil {
		return err
	}
	if err := state.SerializeKey("a"); err != nil {
		return err
	}
	if err := state.SerializeValue(1); err != nil {
		return err
	}
	return state.End()
}

func TestMarshalLengthMismatch(t *testing.T) {
	_, err := cbor.Marshal(shortMap{})
	assert.ErrorContains(t, err, "map declared 2 entries but 1 were written")
	// Indefinite containers have no declared length to violate
	data, err := cbor.Marshal(shortMap{}, cbor.WithIndefiniteLength(true))
	require.NoError(t, err)
	assert.Equal(t, "bf616101ff", hex.EncodeToString(data))
}

func TestUnmarshalLogsUnit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	tmpSet := linearmap.NewSet[rune]()
	err := cbor.Unmarshal(test.DecodeHexString("f6"), tmpSet, cbor.WithLogger(logger))
	require.NoError(t, err)
	assert.True(t, tmpSet.IsEmpty())
	assert.Contains(t, buf.String(), "decoding unit as empty container")
	assert.Contains(t, buf.String(), "component=cbor")
}

func TestUnmarshalTrailingDataKeepsReceiver(t *testing.T) {
	testDefs := []struct {
		name    string
		cborHex string
	}{
		{name: "definite", cborHex: "81 07 00"},
		{name: "indefinite", cborHex: "9f 07 ff 00"},
		{name: "unit", cborHex: "f6 00"},
		{name: "set tag", cborHex: "d90102 81 07 f6"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			tmpSet := linearmap.NewSet[int]()
			tmpSet.Insert(42)
			err := cbor.Unmarshal(test.DecodeHexString(testDef.cborHex), tmpSet)
			require.ErrorIs(t, err, cbor.ErrExtraneousData)
			assert.Equal(t, []int{42}, tmpSet.Values())
		})
	}
	// Trailing bytes after a nested map are caught at the top level only
	tmpMap := linearmap.New[string, *linearmap.Map[string, int]]()
	tmpMap.Insert("keep", linearmap.New[string, int]())
	err := cbor.Unmarshal(test.DecodeHexString("a1 6178 a1 6179 01 00"), tmpMap)
	require.ErrorIs(t, err, cbor.ErrExtraneousData)
	assert.Equal(t, []string{"keep"}, slices.Collect(tmpMap.Keys()))
}

func TestUnmarshalNilReceiver(t *testing.T) {
	err := cbor.Unmarshal(test.DecodeHexString("a0"), (*linearmap.Map[string, int])(nil))
	assert.ErrorIs(t, err, linearmap.ErrNilReceiver)
}
