package main

import (
	"gopkg.in/yaml.v3"

	"github.com/ironleaf-games/kvtext/pkg/kv"
)

// toNode converts a decoded tree into a yaml.Node tree so it can be
// marshaled directly: a plain map would sort keys alphabetically and
// lose the original member order.
func toNode(v *kv.Value) *yaml.Node {
	switch v.Kind() {
	case kv.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case kv.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case kv.KindNumber:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float"}
		_ = n.Encode(v.Num())
		return n
	case kv.KindBoolean:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool"}
		_ = n.Encode(v.Bool())
		return n
	case kv.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.Elems() {
			n.Content = append(n.Content, toNode(e))
		}
		return n
	case kv.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			n.Content = append(n.Content, key, toNode(m.Value))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// renderYAML marshals v as an order-preserving YAML document; every
// decode subcommand writes its result in this form.
func renderYAML(v *kv.Value) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{toNode(v)}}
	return yaml.Marshal(doc)
}
