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

package bench

import (
	"fmt"
	"testing"

	"github.com/blinklabs-io/linearmap"
)

// BenchmarkMapInsert benchmarks building a map from scratch
func BenchmarkMapInsert(b *testing.B) {
	for _, size := range FixtureSizes {
		keys := make([]string, size)
		for i := range keys {
			keys[i] = FixtureKey(i)
		}
		b.Run(fmt.Sprintf("Size_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m := linearmap.WithCapacity[string, int](size)
				for j, k := range keys {
					m.Insert(k, j)
				}
			}
		})
	}
}

// BenchmarkMapGet benchmarks a lookup of the last inserted key, which is the
// worst case for a linear scan
func BenchmarkMapGet(b *testing.B) {
	for _, size := range FixtureSizes {
		m := MapFixture(size)
		key := FixtureKey(0)
		b.Run(fmt.Sprintf("Size_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok := m.Get(key); !ok {
					b.Fatal("key not found")
				}
			}
		})
	}
}

// BenchmarkMarshal benchmarks encoding a map in each format
func BenchmarkMarshal(b *testing.B) {
	for _, format := range Formats() {
		for _, size := range FixtureSizes {
			m := MapFixture(size)
			b.Run(fmt.Sprintf("%s_Size_%d", format.Name, size), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := format.Marshal(m); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkUnmarshal benchmarks decoding a map in each format
func BenchmarkUnmarshal(b *testing.B) {
	for _, format := range Formats() {
		for _, size := range FixtureSizes {
			data, err := format.Marshal(MapFixture(size))
			if err != nil {
				b.Fatal(err)
			}
			b.Run(fmt.Sprintf("%s_Size_%d", format.Name, size), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					tmpMap := linearmap.New[string, int]()
					if err := format.Unmarshal(data, tmpMap); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
