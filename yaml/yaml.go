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

// Package yaml implements the serde protocol for YAML using yaml.v3 node trees.
// Mapping node content keeps the container's iteration order.
package yaml

import (
	"log/slog"
)

// DefaultIndent is the number of spaces used for each nesting level
const DefaultIndent = 2

type encoderConfig struct {
	indent int
}

// EncoderOptionFunc is a type that represents functions that modify the encoder config
type EncoderOptionFunc func(*encoderConfig)

// WithIndent specifies the number of spaces used for each nesting level
func WithIndent(indent int) EncoderOptionFunc {
	return func(c *encoderConfig) {
		c.indent = indent
	}
}

func newEncoderConfig(opts ...EncoderOptionFunc) encoderConfig {
	c := encoderConfig{
		indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type decoderConfig struct {
	logger *slog.Logger
}

// DecoderOptionFunc is a type that represents functions that modify the decoder config
type DecoderOptionFunc func(*decoderConfig)

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) DecoderOptionFunc {
	return func(c *decoderConfig) {
		c.logger = logger
	}
}

func newDecoderConfig(opts ...DecoderOptionFunc) decoderConfig {
	c := decoderConfig{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}
