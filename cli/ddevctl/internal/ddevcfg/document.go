package ddevcfg

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a YAML mapping edited in place at the node level so key order
// and comments written by DDEV or by hand survive a save.
type Document struct {
	doc *yaml.Node
}

// NewDocument returns an empty mapping document.
func NewDocument() *Document {
	return &Document{doc: &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}}
}

// Parse reads a YAML mapping. Empty input yields an empty document.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return NewDocument(), nil
	}
	top := doc.Content[0]
	switch {
	case top.Kind == yaml.MappingNode:
	case top.Kind == yaml.ScalarNode && top.Tag == "!!null":
		doc.Content[0] = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", HeadComment: top.HeadComment}
	default:
		return nil, fmt.Errorf("expected a mapping at the top level, found %s", kindName(top.Kind))
	}
	return &Document{doc: &doc}, nil
}

func (d *Document) mapping() *yaml.Node { return d.doc.Content[0] }

func (d *Document) node(key string) *yaml.Node {
	m := d.mapping()
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// Has reports whether key is present, even with a null value.
func (d *Document) Has(key string) bool { return d.node(key) != nil }

// Keys lists top-level keys in file order.
func (d *Document) Keys() []string {
	m := d.mapping()
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}

// Value renders key as the flat string `ddev config` flags accept: scalars
// verbatim, sequences and mappings as their values joined with ":".
func (d *Document) Value(key string) (string, bool) {
	n := d.node(key)
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", false
		}
		return n.Value, true
	case yaml.SequenceNode:
		return joinScalars(n.Content), true
	case yaml.MappingNode:
		values := make([]*yaml.Node, 0, len(n.Content)/2)
		for i := 1; i < len(n.Content); i += 2 {
			values = append(values, n.Content[i])
		}
		return joinScalars(values), true
	case yaml.AliasNode:
		if n.Alias != nil {
			return n.Alias.Value, true
		}
	}
	return "", false
}

// Bool decodes key as a boolean; anything else reads as false.
func (d *Document) Bool(key string) bool {
	n := d.node(key)
	if n == nil || n.Kind != yaml.ScalarNode {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false
	}
	return b
}

// Name is the DDEV project name, empty when unset.
func (d *Document) Name() string {
	v, _ := d.Value("name")
	return strings.TrimSpace(v)
}

// Set replaces key's value, keeping its comments, or appends key after the
// last existing key. value may be a *yaml.Node.
func (d *Document) Set(key string, value any) error {
	var n *yaml.Node
	if vn, ok := value.(*yaml.Node); ok {
		n = vn
	} else {
		n = &yaml.Node{}
		if err := n.Encode(value); err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
	}
	if existing := d.node(key); existing != nil {
		n.HeadComment = existing.HeadComment
		n.LineComment = existing.LineComment
		n.FootComment = existing.FootComment
		*existing = *n
		return nil
	}
	m := d.mapping()
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, n)
	return nil
}

// Bytes encodes the document with the four-space indentation ddev writes. An empty mapping
// encodes to an empty file.
func (d *Document) Bytes() ([]byte, error) {
	if len(d.mapping().Content) == 0 && d.mapping().HeadComment == "" {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(d.doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func joinScalars(nodes []*yaml.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, c := range nodes {
		if c.Kind == yaml.ScalarNode {
			parts = append(parts, c.Value)
		}
	}
	return strings.Join(parts, ":")
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	}
	return "an unknown node"
}
