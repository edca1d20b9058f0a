package schema

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rulegen/pkg/model"
)

// Option customises validator construction.
type Option func(*Validator)

// WithSemanticChecks toggles the document-scope invariant pass that runs
// after the structural walk succeeds. Enabled by default.
func WithSemanticChecks(enabled bool) Option {
	return func(v *Validator) {
		v.semantic = enabled
	}
}

// Validator checks a rule document against a schema. Two dialects are
// supported: the native cardinality/order table (YAML) and JSON Schema
// (compiled through kin-openapi). A Validator is immutable after
// construction and safe for concurrent use.
type Validator struct {
	table    *Schema
	compiled *jsonSchema
	semantic bool
}

// New compiles schema bytes into a Validator. Payloads whose first
// significant byte is '{' are treated as JSON Schema; everything else as the
// native dialect.
func New(schemaBytes []byte, options ...Option) (*Validator, error) {
	v := &Validator{semantic: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}

	trimmed := bytes.TrimSpace(schemaBytes)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		compiled, err := parseJSONSchema(schemaBytes)
		if err != nil {
			return nil, err
		}
		v.compiled = compiled
		return v, nil
	}

	table, err := ParseSchema(schemaBytes)
	if err != nil {
		return nil, err
	}
	v.table = table
	return v, nil
}

// Default returns a validator over the built-in RuleDocument schema.
func Default(options ...Option) *Validator {
	v := &Validator{table: DefaultSchema(), semantic: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate walks the document once and returns nil on success or a
// *SchemaError enumerating every violation found. The check is pure: no
// side effects, no repair, no partial acceptance.
func (v *Validator) Validate(documentBytes []byte) error {
	var violations []Violation

	switch {
	case v.compiled != nil:
		found, err := v.compiled.validate(documentBytes)
		if err != nil {
			return err
		}
		violations = append(violations, found...)
	case v.table != nil:
		found, err := v.structural(documentBytes)
		if err != nil {
			return err
		}
		violations = append(violations, found...)
	default:
		return fmt.Errorf("schema: validator has no schema configured")
	}

	if len(violations) == 0 && v.semantic {
		violations = append(violations, v.invariants(documentBytes)...)
	}

	if len(violations) > 0 {
		return &SchemaError{Violations: violations}
	}
	return nil
}

// structural performs the single-pass presence/cardinality/order walk over
// the document's top-level elements, in document order.
func (v *Validator) structural(documentBytes []byte) ([]Violation, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(documentBytes, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}

	root := unwrapDocument(&doc)
	if root == nil {
		return []Violation{{Kind: ViolationMissing, Message: "document is empty"}}, nil
	}
	if root.Kind != yaml.MappingNode {
		return []Violation{{Kind: ViolationUnknown, Line: root.Line, Message: "document root must be a mapping"}}, nil
	}

	type occurrence struct {
		count    int
		first    int
		last     int
		line     int
		lastLine int
	}
	seen := make(map[string]*occurrence)

	var violations []Violation
	position := 0
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		name := key.Value

		if _, declared := v.table.constraints[name]; !declared {
			violations = append(violations, Violation{
				Kind:    ViolationUnknown,
				Element: name,
				Line:    key.Line,
				Message: "element is not declared by the schema",
			})
			position++
			continue
		}

		occ := seen[name]
		if occ == nil {
			occ = &occurrence{first: position, line: key.Line}
			seen[name] = occ
		}
		occ.count++
		occ.last = position
		occ.lastLine = key.Line
		position++
	}

	for _, name := range v.table.order {
		c := v.table.constraints[name]
		occ := seen[name]
		count := 0
		if occ != nil {
			count = occ.count
		}

		if count < c.Min {
			violations = append(violations, Violation{
				Kind:    ViolationMissing,
				Element: name,
				Message: "required element is missing",
			})
		}
		if c.Max != Unbounded && count > c.Max {
			violations = append(violations, Violation{
				Kind:    ViolationRepeated,
				Element: name,
				Line:    occ.lastLine,
				Message: fmt.Sprintf("element appears %d times, at most %d allowed", count, c.Max),
			})
		}
	}

	for _, name := range v.table.order {
		occ := seen[name]
		if occ == nil {
			continue
		}
		for _, dep := range v.table.constraints[name].MustFollow {
			depOcc := seen[dep]
			if depOcc == nil {
				continue
			}
			if occ.first < depOcc.last {
				violations = append(violations, Violation{
					Kind:    ViolationMisordered,
					Element: name,
					Line:    occ.line,
					Message: fmt.Sprintf("element must follow %q", dep),
				})
			}
		}
	}

	return violations, nil
}

// invariants folds the model-level document-scope checks into the schema
// violation list.
func (v *Validator) invariants(documentBytes []byte) []Violation {
	var doc model.RuleDocument
	if err := yaml.Unmarshal(documentBytes, &doc); err != nil {
		return []Violation{{
			Kind:    ViolationInvariant,
			Message: fmt.Sprintf("decode document: %v", err),
		}}
	}

	found := model.Validate(doc)
	out := make([]Violation, 0, len(found))
	for _, violation := range found {
		out = append(out, Violation{
			Kind:    ViolationInvariant,
			Element: violation.Field,
			Message: violation.Message,
		})
	}
	return out
}
