package schema

import "fmt"

// ViolationKind classifies schema constraint failures.
type ViolationKind string

const (
	// ViolationMissing flags a required element that never appears.
	ViolationMissing ViolationKind = "missing"
	// ViolationRepeated flags an element appearing more often than allowed.
	ViolationRepeated ViolationKind = "repeated"
	// ViolationMisordered flags an element out of declared order.
	ViolationMisordered ViolationKind = "misordered"
	// ViolationUnknown flags an element the schema does not declare.
	ViolationUnknown ViolationKind = "unknown"
	// ViolationSchema flags a JSON Schema dialect failure.
	ViolationSchema ViolationKind = "schema"
	// ViolationInvariant flags a document-scope semantic invariant failure.
	ViolationInvariant ViolationKind = "invariant"
)

// Violation is a single constraint failure with optional location metadata.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Element string        `json:"element,omitempty"`
	Line    int           `json:"line,omitempty"`
	Message string        `json:"message"`
}

func (v Violation) String() string {
	if v.Element == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Message)
	}
	return fmt.Sprintf("%s: element %q: %s", v.Kind, v.Element, v.Message)
}

// SchemaError enumerates every constraint violation found in one document.
// Validation is all-or-nothing: the presence of any violation fails the
// call, and nothing is repaired.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "schema: validation failed"
	case 1:
		return "schema: " + e.Violations[0].String()
	default:
		return fmt.Sprintf("schema: %s (and %d more violations)",
			e.Violations[0].String(), len(e.Violations)-1)
	}
}
