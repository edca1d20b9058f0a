package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// jsonSchema is the JSON Schema dialect backend. The schema is compiled once
// at construction; evaluation decodes the YAML document, round-trips it
// through JSON so value types match what the evaluator expects, and visits
// it with every error collected.
type jsonSchema struct {
	compiled *openapi3.Schema
}

func parseJSONSchema(raw []byte) (*jsonSchema, error) {
	var compiled openapi3.Schema
	if err := json.Unmarshal(raw, &compiled); err != nil {
		return nil, fmt.Errorf("schema: parse json schema: %w", err)
	}
	return &jsonSchema{compiled: &compiled}, nil
}

func (j *jsonSchema) validate(documentBytes []byte) ([]Violation, error) {
	var decoded any
	if err := yaml.Unmarshal(documentBytes, &decoded); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}

	normalized, err := jsonRoundTrip(decoded)
	if err != nil {
		return nil, fmt.Errorf("schema: normalize document: %w", err)
	}

	visitErr := j.compiled.VisitJSON(normalized, openapi3.MultiErrors())
	if visitErr == nil {
		return nil, nil
	}

	var multi openapi3.MultiError
	if errors.As(visitErr, &multi) {
		out := make([]Violation, 0, len(multi))
		for _, item := range multi {
			out = append(out, violationFromSchemaError(item))
		}
		return out, nil
	}

	return []Violation{violationFromSchemaError(visitErr)}, nil
}

func violationFromSchemaError(err error) Violation {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		element := strings.Join(schemaErr.JSONPointer(), ".")
		message := strings.TrimSpace(schemaErr.Reason)
		if message == "" {
			message = strings.TrimSpace(schemaErr.Error())
		}
		return Violation{Kind: ViolationSchema, Element: element, Message: message}
	}
	return Violation{Kind: ViolationSchema, Message: strings.TrimSpace(err.Error())}
}

func jsonRoundTrip(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
