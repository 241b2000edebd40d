package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ironleaf-games/kvtext/pkg/kv"
)

// fromNode converts a parsed YAML document into a kv.Value tree, the
// inverse of toNode; used by every encode subcommand to accept a YAML
// document on stdin and turn it into the tree the dialect encoder
// expects.
func fromNode(n *yaml.Node) (*kv.Value, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("expected a single YAML document root")
		}
		return fromNode(n.Content[0])
	}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return kv.Null(), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return kv.Bool(b), nil
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, err
			}
			return kv.Number(f), nil
		default:
			return kv.String(n.Value), nil
		}
	case yaml.SequenceNode:
		arr := kv.Array()
		for _, c := range n.Content {
			elem, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			arr.Append(elem)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := kv.Object()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %v", n.Kind)
	}
}

// parseYAMLTree reads a single YAML document from data and converts it
// into a kv.Value tree.
func parseYAMLTree(data []byte) (*kv.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML input: %w", err)
	}
	if len(doc.Content) == 0 {
		return kv.Object(), nil
	}
	return fromNode(&doc)
}
