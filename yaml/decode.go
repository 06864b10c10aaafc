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
	"errors"
	"fmt"

	"github.com/blinklabs-io/linearmap/serde"
	_yaml "gopkg.in/yaml.v3"
)

var ErrUnexpectedNode = errors.New("unexpected YAML node")

// Unmarshal decodes the first YAML document in data into v through the serde protocol
func Unmarshal(data []byte, v serde.Deserializable, opts ...DecoderOptionFunc) error {
	var doc _yaml.Node
	if err := _yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	root := &doc
	if doc.Kind == _yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	return v.Deserialize(&decoder{
		node:   root,
		config: newDecoderConfig(opts...),
	})
}

// decoder reads a single node
type decoder struct {
	node   *_yaml.Node
	config decoderConfig
}

func kindName(kind _yaml.Kind) string {
	switch kind {
	case _yaml.DocumentNode:
		return "document"
	case _yaml.SequenceNode:
		return "sequence"
	case _yaml.MappingNode:
		return "mapping"
	case _yaml.ScalarNode:
		return "scalar"
	case _yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}

// resolve follows aliases and reports whether the node is null
func (d *decoder) resolve() (*_yaml.Node, bool) {
	node := d.node
	for node.Kind == _yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	// An empty document has no content at all
	if node.Kind == 0 || node.Kind == _yaml.DocumentNode ||
		(node.Kind == _yaml.ScalarNode && node.ShortTag() == "!!null") {
		d.config.logger.Debug(
			"decoding null as empty container",
			"component", "yaml",
			"line", node.Line,
		)
		return node, true
	}
	return node, false
}

func (d *decoder) DeserializeMap(visitor serde.MapVisitor) error {
	node, isNull := d.resolve()
	if isNull {
		return visitor.VisitUnit()
	}
	if node.Kind != _yaml.MappingNode {
		return fmt.Errorf(
			"%w: expected mapping, got %s at line %d",
			ErrUnexpectedNode,
			kindName(node.Kind),
			node.Line,
		)
	}
	return visitor.VisitMap(&mapAccess{d: d, content: node.Content})
}

func (d *decoder) DeserializeSeq(visitor serde.SeqVisitor) error {
	node, isNull := d.resolve()
	if isNull {
		return visitor.VisitUnit()
	}
	if node.Kind != _yaml.SequenceNode {
		return fmt.Errorf(
			"%w: expected sequence, got %s at line %d",
			ErrUnexpectedNode,
			kindName(node.Kind),
			node.Line,
		)
	}
	return visitor.VisitSeq(&seqAccess{d: d, content: node.Content})
}

func (d *decoder) decodeNode(node *_yaml.Node, dest any) error {
	if tmp, ok := serde.AsDeserializable(dest); ok {
		return tmp.Deserialize(&decoder{node: node, config: d.config})
	}
	return node.Decode(dest)
}

type mapAccess struct {
	d       *decoder
	content []*_yaml.Node
	pos     int
}

func (m *mapAccess) SizeHint() (int, bool) {
	return len(m.content) / 2, true
}

func (m *mapAccess) NextEntry(key any, value any) (bool, error) {
	if m.pos >= len(m.content) {
		return false, nil
	}
	if m.pos+1 >= len(m.content) {
		return false, fmt.Errorf("%w: mapping key without value", ErrUnexpectedNode)
	}
	if err := m.d.decodeNode(m.content[m.pos], key); err != nil {
		return false, err
	}
	if err := m.d.decodeNode(m.content[m.pos+1], value); err != nil {
		return false, err
	}
	m.pos += 2
	return true, nil
}

func (m *mapAccess) End() error {
	return nil
}

type seqAccess struct {
	d       *decoder
	content []*_yaml.Node
	pos     int
}

func (s *seqAccess) SizeHint() (int, bool) {
	return len(s.content), true
}

func (s *seqAccess) NextElement(elem any) (bool, error) {
	if s.pos >= len(s.content) {
		return false, nil
	}
	if err := s.d.decodeNode(s.content[s.pos], elem); err != nil {
		return false, err
	}
	s.pos++
	return true, nil
}

func (s *seqAccess) End() error {
	return nil
}
