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

// Package bench provides benchmark utilities and fixtures shared by the
// container and format benchmarks.
package bench

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/linearmap"
	"github.com/blinklabs-io/linearmap/cbor"
	"github.com/blinklabs-io/linearmap/json"
	"github.com/blinklabs-io/linearmap/serde"
	"github.com/blinklabs-io/linearmap/yaml"
)

// FixtureSizes are the container sizes benchmarked by default. Linear lookup
// is expected to stay competitive up to the low hundreds of entries.
var FixtureSizes = []int{1, 8, 64, 512}

// MapFixture returns a map of size entries with keys inserted in descending
// order, so that insertion order differs from sorted order
func MapFixture(size int) *linearmap.Map[string, int] {
	ret := linearmap.WithCapacity[string, int](size)
	for i := size - 1; i >= 0; i-- {
		ret.Insert(FixtureKey(i), i)
	}
	return ret
}

// SetFixture returns a set of size elements in descending order
func SetFixture(size int) *linearmap.Set[string] {
	ret := linearmap.SetWithCapacity[string](size)
	for i := size - 1; i >= 0; i-- {
		ret.Insert(FixtureKey(i))
	}
	return ret
}

// FixtureKey returns the key used for index i in the fixtures
func FixtureKey(i int) string {
	return fmt.Sprintf("key-%05d", i)
}

// Format pairs a wire format with its marshal and unmarshal functions
type Format struct {
	Name      string
	Marshal   func(serde.Serializable) ([]byte, error)
	Unmarshal func([]byte, serde.Deserializable) error
}

// Formats returns the supported wire formats
func Formats() []Format {
	return []Format{
		{
			Name: "cbor",
			Marshal: func(v serde.Serializable) ([]byte, error) {
				return cbor.Marshal(v)
			},
			Unmarshal: func(data []byte, v serde.Deserializable) error {
				return cbor.Unmarshal(data, v)
			},
		},
		{
			Name: "json",
			Marshal: func(v serde.Serializable) ([]byte, error) {
				return json.Marshal(v)
			},
			Unmarshal: func(data []byte, v serde.Deserializable) error {
				return json.Unmarshal(data, v)
			},
		},
		{
			Name: "yaml",
			Marshal: func(v serde.Serializable) ([]byte, error) {
				return yaml.Marshal(v)
			},
			Unmarshal: func(data []byte, v serde.Deserializable) error {
				return yaml.Unmarshal(data, v)
			},
		},
	}
}

// FormatByName looks up a format by case-insensitive name
func FormatByName(name string) (Format, error) {
	for _, format := range Formats() {
		if strings.EqualFold(format.Name, name) {
			return format, nil
		}
	}
	return Format{}, fmt.Errorf("unknown format: %s", name)
}
