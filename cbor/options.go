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

package cbor

import (
	"log/slog"
)

// DefaultMaxNestedLevels matches the limit used for the element decoder
const DefaultMaxNestedLevels = 256

type encoderConfig struct {
	setTag     bool
	mapTag     bool
	indefinite bool
}

// EncoderOptionFunc is a type that represents functions that modify the encoder config
type EncoderOptionFunc func(*encoderConfig)

// WithSetTag specifies whether sequences are wrapped in tag 258 (mathematical finite set)
func WithSetTag(setTag bool) EncoderOptionFunc {
	return func(c *encoderConfig) {
		c.setTag = setTag
	}
}

// WithMapTag specifies whether maps are wrapped in tag 259
func WithMapTag(mapTag bool) EncoderOptionFunc {
	return func(c *encoderConfig) {
		c.mapTag = mapTag
	}
}

// WithIndefiniteLength specifies whether maps and sequences are always written with
// indefinite length. Containers with an unknown length are always written this way
func WithIndefiniteLength(indefinite bool) EncoderOptionFunc {
	return func(c *encoderConfig) {
		c.indefinite = indefinite
	}
}

type decoderConfig struct {
	logger          *slog.Logger
	maxNestedLevels int
}

// DecoderOptionFunc is a type that represents functions that modify the decoder config
type DecoderOptionFunc func(*decoderConfig)

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) DecoderOptionFunc {
	return func(c *decoderConfig) {
		c.logger = logger
	}
}

// WithMaxNestedLevels specifies how deeply maps and sequences may be nested
func WithMaxNestedLevels(levels int) DecoderOptionFunc {
	return func(c *decoderConfig) {
		c.maxNestedLevels = levels
	}
}

func newDecoderConfig(opts ...DecoderOptionFunc) decoderConfig {
	c := decoderConfig{
		maxNestedLevels: DefaultMaxNestedLevels,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

func newEncoderConfig(opts ...EncoderOptionFunc) encoderConfig {
	c := encoderConfig{}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
