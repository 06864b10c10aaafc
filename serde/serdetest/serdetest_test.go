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

package serdetest_test

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/linearmap/serde"
	"github.com/blinklabs-io/linearmap/serde/serdetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairs is a minimal serde map used to exercise the token stream
type pairs struct {
	keys   []string
	values []int
}

func (p *pairs) Serialize(s serde.Serializer) error {
	state, err := s.SerializeMap(len(p.keys))
	if err != nil {
		return err
	}
	for i, k := range p.keys {
		if err := state.SerializeKey(k); err != nil {
			return err
		}
		if err := state.SerializeValue(p.values[i]); err != nil {
			return err
		}
	}
	return state.End()
}

func (p *pairs) Deserialize(d serde.Deserializer) error {
	return d.DeserializeMap(p)
}

func (p *pairs) VisitUnit() error {
	p.keys = []string{}
	p.values = []int{}
	return nil
}

func (p *pairs) VisitMap(access serde.MapAccess) error {
	p.keys = []string{}
	p.values = []int{}
	for {
		var key string
		var value int
		ok, err := access.NextEntry(&key, &value)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		p.keys = append(p.keys, key)
		p.values = append(p.values, value)
	}
	return access.End()
}

func decodePairs(d serde.Deserializer) (*pairs, error) {
	ret := &pairs{}
	if err := ret.Deserialize(d); err != nil {
		return nil, err
	}
	return ret, nil
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "MapStart(2)", serdetest.MapStart(2).String())
	assert.Equal(t, "SeqStart(None)", serdetest.SeqStartUnknown().String())
	assert.Equal(t, "MapEnd", serdetest.MapEnd().String())
	assert.Equal(t, `Value("a")`, serdetest.Value("a").String())
}

func TestRoundTrip(t *testing.T) {
	serdetest.AssertTokens(
		t,
		&pairs{keys: []string{"z", "a"}, values: []int{1, 2}},
		[]serdetest.Token{
			serdetest.MapStart(2),
			serdetest.Value("z"),
			serdetest.Value(1),
			serdetest.Value("a"),
			serdetest.Value(2),
			serdetest.MapEnd(),
		},
		decodePairs,
	)
}

func TestDeserializerErrors(t *testing.T) {
	errTest := errors.New("test failure")
	testDefs := []struct {
		name        string
		tokens      []serdetest.Token
		opts        []serdetest.OptionFunc
		expectedErr error
	}{
		{
			name:        "no tokens",
			tokens:      []serdetest.Token{},
			expectedErr: serdetest.ErrEndOfTokens,
		},
		{
			name:        "wrong container",
			tokens:      []serdetest.Token{serdetest.SeqStart(0), serdetest.SeqEnd()},
			expectedErr: serdetest.ErrUnexpectedToken,
		},
		{
			name: "wrong value type",
			tokens: []serdetest.Token{
				serdetest.MapStart(1),
				serdetest.Value(1),
				serdetest.Value(1),
				serdetest.MapEnd(),
			},
			expectedErr: serdetest.ErrTypeMismatch,
		},
		{
			name: "injected failure",
			tokens: []serdetest.Token{
				serdetest.MapStart(0),
				serdetest.MapEnd(),
			},
			opts:        []serdetest.OptionFunc{serdetest.WithFailAt(1, errTest)},
			expectedErr: errTest,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			_, err := decodePairs(serdetest.NewDeserializer(testDef.tokens, testDef.opts...))
			require.Error(t, err)
			assert.ErrorIs(t, err, testDef.expectedErr)
		})
	}
}

func TestDeserializerUnit(t *testing.T) {
	d := serdetest.NewDeserializer([]serdetest.Token{serdetest.Unit()})
	tmpPairs, err := decodePairs(d)
	require.NoError(t, err)
	assert.Empty(t, tmpPairs.keys)
	assert.Equal(t, 0, d.Remaining())
}

func TestSerializerFailAt(t *testing.T) {
	errTest := errors.New("test failure")
	s := serdetest.NewSerializer(serdetest.WithFailAt(2, errTest))
	err := (&pairs{keys: []string{"a"}, values: []int{1}}).Serialize(s)
	assert.ErrorIs(t, err, errTest)
	assert.Equal(
		t,
		[]serdetest.Token{serdetest.MapStart(1), serdetest.Value("a")},
		s.Tokens(),
	)
}
