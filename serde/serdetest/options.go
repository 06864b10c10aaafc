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

type config struct {
	failAt  int
	failErr error
}

func newConfig(opts ...OptionFunc) config {
	c := config{
		failAt: -1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// OptionFunc is a type that represents functions that modify the Serializer or Deserializer config
type OptionFunc func(*config)

// WithFailAt makes the token at the given index fail with err instead of being
// emitted (Serializer) or consumed (Deserializer)
func WithFailAt(index int, err error) OptionFunc {
	return func(c *config) {
		c.failAt = index
		c.failErr = err
	}
}
