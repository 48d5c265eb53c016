package config

import (
	"fmt"

	"github.com/nimp-build/nimp/handlers/summary"
	"gopkg.in/yaml.v3"
)

// HintSpecs is decoded from a mapping of template to patterns. Unlike a Go
// map it keeps the order of the file, which decides which hint wins.
type HintSpecs []summary.HintSpec

func (h *HintSpecs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*h = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: hints must be a mapping of message format to patterns", node.Line)
	}
	specs := make(HintSpecs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var spec summary.HintSpec
		if err := key.Decode(&spec.Format); err != nil {
			return err
		}
		switch value.Kind {
		case yaml.ScalarNode:
			var pattern string
			if err := value.Decode(&pattern); err != nil {
				return err
			}
			spec.Patterns = []string{pattern}
		case yaml.SequenceNode:
			if err := value.Decode(&spec.Patterns); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: patterns of %q must be a string or a list", value.Line, spec.Format)
		}
		specs = append(specs, spec)
	}
	*h = specs
	return nil
}
