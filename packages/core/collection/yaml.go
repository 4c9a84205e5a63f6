package collection

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type rawCollection struct {
	Variables stringPairs  `yaml:"variables"`
	Requests  []rawRequest `yaml:"requests"`
}

type rawRequest struct {
	Name    string      `yaml:"name"`
	Method  string      `yaml:"method"`
	URL     string      `yaml:"url"`
	Headers stringPairs `yaml:"headers"`
	Body    *rawBody    `yaml:"body"`
}

type rawBody struct {
	JSON *valuePairs  `yaml:"json"`
	Form *stringPairs `yaml:"form"`
}

type pair struct {
	key   string
	value any
}

// stringPairs decodes a mapping of scalars in document order, keeping the
// literal text of each scalar (so 1.50 stays "1.50").
type stringPairs []pair

func (p *stringPairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a scalar", v.Line, k.Value)
		}
		*p = append(*p, pair{key: k.Value, value: v.Value})
	}
	return nil
}

// valuePairs decodes a mapping in document order with arbitrary values.
type valuePairs []pair

func (p *valuePairs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		var value any
		if err := v.Decode(&value); err != nil {
			return err
		}
		*p = append(*p, pair{key: k.Value, value: stringKeys(value)})
	}
	return nil
}

// stringKeys converts mappings with non-string keys (such as 200: ok) into
// map[string]any, the shape JSON needs.
func stringKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = stringKeys(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = stringKeys(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = stringKeys(item)
		}
		return val
	default:
		return v
	}
}
