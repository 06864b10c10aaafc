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

// Package json implements the serde protocol for JSON.
//
// Maps are written as objects in iteration order and sets as arrays. Keys
// that encode to JSON numbers or booleans are quoted, and parsed back on
// decode. JSON carries no length, so decoders never report a size hint.
package json

import (
	"errors"
	"log/slog"
)

var (
	ErrUnsupportedKey = errors.New("unsupported object key")
	ErrExtraneousData = errors.New("extraneous data after JSON value")
)

type decoderConfig struct {
	logger    *slog.Logger
	useNumber bool
}

// DecoderOptionFunc is a type that represents functions that modify the decoder config
type DecoderOptionFunc func(*decoderConfig)

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) DecoderOptionFunc {
	return func(c *decoderConfig) {
		c.logger = logger
	}
}

// WithUseNumber specifies whether numbers decoded into an interface value are
// kept as json.Number instead of float64
func WithUseNumber(useNumber bool) DecoderOptionFunc {
	return func(c *decoderConfig) {
		c.useNumber = useNumber
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

type encoderConfig struct {
	escapeHTML bool
}

// EncoderOptionFunc is a type that represents functions that modify the encoder config
type EncoderOptionFunc func(*encoderConfig)

// WithEscapeHTML specifies whether <, > and & are escaped inside strings. This
// is enabled by default
func WithEscapeHTML(escapeHTML bool) EncoderOptionFunc {
	return func(c *encoderConfig) {
		c.escapeHTML = escapeHTML
	}
}

func newEncoderConfig(opts ...EncoderOptionFunc) encoderConfig {
	c := encoderConfig{
		escapeHTML: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
