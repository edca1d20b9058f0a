package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Unbounded marks a cardinality with no upper limit.
const Unbounded = -1

// Constraint declares cardinality and ordering for one element kind:
// min 0|1, max 1|Unbounded, and the elements it must appear after.
type Constraint struct {
	Min        int      `yaml:"min"`
	Max        int      `yaml:"max"`
	MustFollow []string `yaml:"mustFollow,omitempty"`
}

// Schema is the declarative cardinality/order table walked once over a
// document's top-level elements. Declaration order is preserved so reports
// are deterministic.
type Schema struct {
	order       []string
	constraints map[string]Constraint
}

// Elements returns the declared element kinds in declaration order.
func (s *Schema) Elements() []string {
	return append([]string(nil), s.order...)
}

// Constraint looks up the declaration for an element kind.
func (s *Schema) Constraint(element string) (Constraint, bool) {
	c, ok := s.constraints[element]
	return c, ok
}

// DefaultSchema encodes the RuleDocument shape: metadata, role and goal are
// required in that order; the remaining sections are optional and follow
// goal.
func DefaultSchema() *Schema {
	s := &Schema{constraints: make(map[string]Constraint)}
	declare := func(name string, c Constraint) {
		s.order = append(s.order, name)
		s.constraints[name] = c
	}

	declare("metadata", Constraint{Min: 1, Max: 1})
	declare("role", Constraint{Min: 1, Max: 1, MustFollow: []string{"metadata"}})
	declare("goal", Constraint{Min: 1, Max: 1, MustFollow: []string{"role"}})
	declare("context", Constraint{Min: 0, Max: 1, MustFollow: []string{"goal"}})
	declare("instructions", Constraint{Min: 0, Max: 1, MustFollow: []string{"goal", "context"}})
	declare("examples", Constraint{Min: 0, Max: 1, MustFollow: []string{"goal", "context", "instructions"}})
	declare("outputFormat", Constraint{Min: 0, Max: 1, MustFollow: []string{"goal", "examples"}})
	declare("safeguards", Constraint{Min: 0, Max: 1, MustFollow: []string{"goal", "outputFormat"}})

	return s
}

// ParseSchema compiles a native-dialect schema document. The file is a YAML
// mapping under an "elements" key; mapping order is significant and is
// preserved for reporting.
func ParseSchema(raw []byte) (*Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("schema: schema payload is empty")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse schema: %w", err)
	}

	root := unwrapDocument(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, errors.New("schema: schema root must be a mapping")
	}

	var elementsNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "elements" {
			elementsNode = root.Content[i+1]
		}
	}
	if elementsNode == nil || elementsNode.Kind != yaml.MappingNode {
		return nil, errors.New(`schema: schema must declare an "elements" mapping`)
	}

	s := &Schema{constraints: make(map[string]Constraint)}
	for i := 0; i+1 < len(elementsNode.Content); i += 2 {
		name := elementsNode.Content[i].Value
		if name == "" {
			return nil, errors.New("schema: element name must not be empty")
		}
		if _, exists := s.constraints[name]; exists {
			return nil, fmt.Errorf("schema: element %q declared twice", name)
		}

		var c Constraint
		if err := elementsNode.Content[i+1].Decode(&c); err != nil {
			return nil, fmt.Errorf("schema: element %q: %w", name, err)
		}
		if c.Min < 0 || c.Min > 1 {
			return nil, fmt.Errorf("schema: element %q: min must be 0 or 1", name)
		}
		if c.Max != Unbounded && c.Max < c.Min {
			return nil, fmt.Errorf("schema: element %q: max %d below min %d", name, c.Max, c.Min)
		}

		s.order = append(s.order, name)
		s.constraints[name] = c
	}
	if len(s.order) == 0 {
		return nil, errors.New("schema: schema declares no elements")
	}

	for name, c := range s.constraints {
		for _, dep := range c.MustFollow {
			if _, ok := s.constraints[dep]; !ok {
				return nil, fmt.Errorf("schema: element %q must follow undeclared element %q", name, dep)
			}
		}
	}

	return s, nil
}

func unwrapDocument(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}
