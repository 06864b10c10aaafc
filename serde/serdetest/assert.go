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

package serdetest

import (
	"testing"

	"github.com/blinklabs-io/linearmap/serde"
	"github.com/stretchr/testify/assert"
)

// AssertSerializeTokens checks that value serializes to exactly the expected tokens
func AssertSerializeTokens(
	t testing.TB,
	value serde.Serializable,
	expected []Token,
) bool {
	t.Helper()
	s := NewSerializer()
	if !assert.NoError(t, value.Serialize(s), "serialize") {
		return false
	}
	return assert.Equal(t, expected, s.Tokens(), "serialized tokens")
}

// AssertDeserializeTokens checks that decode reads exactly the given tokens and
// produces expected
func AssertDeserializeTokens[T any](
	t testing.TB,
	expected T,
	tokens []Token,
	decode func(serde.Deserializer) (T, error),
) bool {
	t.Helper()
	d := NewDeserializer(tokens)
	got, err := decode(d)
	if !assert.NoError(t, err, "deserialize") {
		return false
	}
	if !assert.Equal(t, expected, got, "deserialized value") {
		return false
	}
	return assert.Zero(t, d.Remaining(), "unconsumed tokens")
}

// AssertTokens checks that value serializes to tokens and that tokens
// deserialize back to value
func AssertTokens[T serde.Serializable](
	t testing.TB,
	value T,
	tokens []Token,
	decode func(serde.Deserializer) (T, error),
) bool {
	t.Helper()
	ok := AssertSerializeTokens(t, value, tokens)
	return AssertDeserializeTokens(t, value, tokens, decode) && ok
}
