package orchestrator

import "fmt"

// GenerationError is the single externally visible failure type for a
// generation call. It always carries the identifiers of every input that was
// supplied, so batch callers can report exactly which rule failed out of
// many.
type GenerationError struct {
	DocumentPath string
	TemplatePath string
	SchemaPath   string
	Err          error
}

func (e *GenerationError) Error() string {
	if e.SchemaPath != "" {
		return fmt.Sprintf("generate rule: document %q, template %q, schema %q: %v",
			e.DocumentPath, e.TemplatePath, e.SchemaPath, e.Err)
	}
	return fmt.Sprintf("generate rule: document %q, template %q: %v",
		e.DocumentPath, e.TemplatePath, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
