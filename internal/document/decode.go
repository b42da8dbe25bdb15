package document

import (
	"fmt"
	"strconv"

	orderedmap "github.com/pb33f/ordered-map/v2"
	"go.yaml.in/yaml/v4"
)

// Parse decodes a JSON (or YAML, of which JSON is a subset) document into an
// order-preserving tree and installs it as a Document.
func Parse(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	root, err := fromNode(&node)
	if err != nil {
		return nil, err
	}
	return New(root), nil
}

func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.MappingNode:
		obj := orderedmap.New[string, any]()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(node.Content[i].Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, value)
		}
		return seq, nil
	case yaml.ScalarNode:
		return fromScalar(node)
	}
	return nil, fmt.Errorf("decoding document: unsupported node kind %d", node.Kind)
}

func fromScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return node.Value, nil
		}
		return b, nil
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return node.Value, nil
		}
		return n, nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return node.Value, nil
		}
		return f, nil
	default:
		return node.Value, nil
	}
}
