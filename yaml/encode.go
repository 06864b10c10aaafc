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

package yaml

import (
	"bytes"

	"github.com/blinklabs-io/linearmap/serde"
	_yaml "gopkg.in/yaml.v3"
)

// Marshal encodes v to YAML through the serde protocol
func Marshal(v serde.Serializable, opts ...EncoderOptionFunc) ([]byte, error) {
	config := newEncoderConfig(opts...)
	root := &_yaml.Node{}
	if err := v.Serialize(&encoder{node: root}); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := _yaml.NewEncoder(&buf)
	enc.SetIndent(config.indent)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encoder fills in a single node
type encoder struct {
	node *_yaml.Node
}

func encodeNode(v any) (*_yaml.Node, error) {
	node := &_yaml.Node{}
	if tmp, ok := serde.AsSerializable(v); ok {
		if err := tmp.Serialize(&encoder{node: node}); err != nil {
			return nil, err
		}
		return node, nil
	}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}

func (e *encoder) SerializeMap(length int) (serde.MapSerializer, error) {
	e.node.Kind = _yaml.MappingNode
	e.node.Tag = "!!map"
	e.node.Content = make([]*_yaml.Node, 0, 2*max(length, 0))
	return &mapSerializer{node: e.node}, nil
}

func (e *encoder) SerializeSeq(length int) (serde.SeqSerializer, error) {
	e.node.Kind = _yaml.SequenceNode
	e.node.Tag = "!!seq"
	e.node.Content = make([]*_yaml.Node, 0, max(length, 0))
	return &seqSerializer{node: e.node}, nil
}

func (e *encoder) SerializeUnit() error {
	e.node.Kind = _yaml.ScalarNode
	e.node.Tag = "!!null"
	e.node.Value = "null"
	return nil
}

type mapSerializer struct {
	node *_yaml.Node
}

func (m *mapSerializer) SerializeKey(key any) error {
	child, err := encodeNode(key)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, child)
	return nil
}

func (m *mapSerializer) SerializeValue(value any) error {
	child, err := encodeNode(value)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, child)
	return nil
}

func (m *mapSerializer) End() error {
	return nil
}

type seqSerializer struct {
	node *_yaml.Node
}

func (s *seqSerializer) SerializeElement(elem any) error {
	child, err := encodeNode(elem)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, child)
	return nil
}

func (s *seqSerializer) End() error {
	return nil
}
