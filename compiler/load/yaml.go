package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeTables decodes every YAML document in data into raw table inputs.
// Node positions are preserved so descriptor errors point at the exact
// annotation in the file.
func DecodeTables(data []byte, file string) ([]*TableInput, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []*TableInput
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
			continue
		}
		in, err := tableInput(doc.Content[0], file)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// DecodeTable decodes a single-document descriptor.
func DecodeTable(data []byte, file string) (*TableInput, error) {
	tables, err := DecodeTables(data, file)
	if err != nil {
		return nil, err
	}
	if len(tables) != 1 {
		return nil, fmt.Errorf("%s: expected one table document, got %d", file, len(tables))
	}
	return tables[0], nil
}

// ParseFile reads a descriptor file and decodes every table in it.
func ParseFile(path string) ([]*TableInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeTables(data, path)
}

func tableInput(n *yaml.Node, file string) (*TableInput, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: table document must be a mapping", nodePos(n, file))
	}
	in := &TableInput{Pos: nodePos(n, file)}
	for i := 0; i < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "name":
			in.Name = val.Value
		case "fields":
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("%s: fields must be a sequence", nodePos(val, file))
			}
			for _, fn := range val.Content {
				f, err := fieldInput(fn, file)
				if err != nil {
					return nil, err
				}
				in.Fields = append(in.Fields, f)
			}
		default:
			ans, err := annotations(key, val, file)
			if err != nil {
				return nil, err
			}
			in.Annotations = append(in.Annotations, ans...)
		}
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%s: table document must carry a record name", in.Pos)
	}
	return in, nil
}

func fieldInput(n *yaml.Node, file string) (FieldInput, error) {
	f := FieldInput{Pos: nodePos(n, file)}
	if n.Kind != yaml.MappingNode {
		return f, fmt.Errorf("%s: field entry must be a mapping", f.Pos)
	}
	for i := 0; i < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "name":
			f.Name = val.Value
		case "type":
			f.Type = val.Value
		default:
			ans, err := annotations(key, val, file)
			if err != nil {
				return f, err
			}
			f.Annotations = append(f.Annotations, ans...)
		}
	}
	if f.Name == "" || f.Type == "" {
		return f, fmt.Errorf("%s: field entry must carry name and type", f.Pos)
	}
	return f, nil
}

// annotations maps one YAML key onto raw annotations. Scalar values become
// the annotation value, mappings become nested attributes, and sequences
// repeat the key once per element (used by repeatable keys such as patch).
func annotations(key, val *yaml.Node, file string) ([]Annotation, error) {
	pos := nodePos(key, file)
	switch val.Kind {
	case yaml.ScalarNode:
		return []Annotation{{Key: key.Value, Value: scalar(val), Pos: pos}}, nil
	case yaml.MappingNode:
		attrs, err := attributes(val, file)
		if err != nil {
			return nil, err
		}
		return []Annotation{{Key: key.Value, Attrs: attrs, Pos: pos}}, nil
	case yaml.SequenceNode:
		var out []Annotation
		for _, item := range val.Content {
			ans, err := annotations(key, item, file)
			if err != nil {
				return nil, err
			}
			out = append(out, ans...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: unsupported value for annotation %q", pos, key.Value)
	}
}

func attributes(n *yaml.Node, file string) ([]Annotation, error) {
	var attrs []Annotation
	for i := 0; i < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		pos := nodePos(key, file)
		switch val.Kind {
		case yaml.ScalarNode:
			attrs = append(attrs, Annotation{Key: key.Value, Value: scalar(val), Pos: pos})
		case yaml.SequenceNode:
			// Field lists: [first_name, last_name].
			parts := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("%s: attribute %q must list scalars", pos, key.Value)
				}
				parts = append(parts, item.Value)
			}
			attrs = append(attrs, Annotation{Key: key.Value, Value: strings.Join(parts, " "), Pos: pos})
		default:
			return nil, fmt.Errorf("%s: unsupported value for attribute %q", pos, key.Value)
		}
	}
	return attrs, nil
}

func scalar(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

func nodePos(n *yaml.Node, file string) Position {
	return Position{File: file, Line: n.Line, Column: n.Column}
}
