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

// Package serdetest provides an in-memory serde format whose wire form is a
// slice of tokens, for asserting exactly which events a type produces and
// accepts.
package serdetest

import (
	"fmt"
	"strconv"
)

type TokenKind uint8

const (
	TokenKindMapStart TokenKind = iota + 1
	TokenKindMapEnd
	TokenKindSeqStart
	TokenKindSeqEnd
	TokenKindUnit
	TokenKindValue
)

func (k TokenKind) String() string {
	switch k {
	case TokenKindMapStart:
		return "MapStart"
	case TokenKindMapEnd:
		return "MapEnd"
	case TokenKindSeqStart:
		return "SeqStart"
	case TokenKindSeqEnd:
		return "SeqEnd"
	case TokenKindUnit:
		return "Unit"
	case TokenKindValue:
		return "Value"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a single event in a token stream
type Token struct {
	Kind TokenKind
	// Len is the declared length for MapStart/SeqStart, or -1 when absent
	Len   int
	Value any
}

func MapStart(length int) Token {
	return Token{Kind: TokenKindMapStart, Len: length}
}

// MapStartUnknown is a map opening without a declared length
func MapStartUnknown() Token {
	return Token{Kind: TokenKindMapStart, Len: -1}
}

func MapEnd() Token {
	return Token{Kind: TokenKindMapEnd}
}

func SeqStart(length int) Token {
	return Token{Kind: TokenKindSeqStart, Len: length}
}

func SeqStartUnknown() Token {
	return Token{Kind: TokenKindSeqStart, Len: -1}
}

func SeqEnd() Token {
	return Token{Kind: TokenKindSeqEnd}
}

func Unit() Token {
	return Token{Kind: TokenKindUnit}
}

// Value is a plain element, key or value
func Value(v any) Token {
	return Token{Kind: TokenKindValue, Value: v}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenKindMapStart, TokenKindSeqStart:
		if t.Len < 0 {
			return t.Kind.String() + "(None)"
		}
		return fmt.Sprintf("%s(%d)", t.Kind, t.Len)
	case TokenKindValue:
		return fmt.Sprintf("Value(%#v)", t.Value)
	default:
		return t.Kind.String()
	}
}
