package render

import "fmt"

// TemplateError reports that a template rule referenced a required field the
// document does not carry, or that the template program itself is
// malformed. Generation is all-or-nothing: a TemplateError means no output
// was produced, never a document with an empty section.
type TemplateError struct {
	// Field names the missing document field, when that is the cause.
	Field string

	// Rule names the template-program rule involved, when one is.
	Rule string

	Err error
}

func (e *TemplateError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("template: field %q: %v", e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("template: required field %q is missing", e.Field)
	case e.Rule != "" && e.Err != nil:
		return fmt.Sprintf("template: rule %q: %v", e.Rule, e.Err)
	case e.Rule != "":
		return fmt.Sprintf("template: rule %q is not defined by the program", e.Rule)
	case e.Err != nil:
		return fmt.Sprintf("template: %v", e.Err)
	default:
		return "template: invalid template program"
	}
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// MissingField builds the TemplateError for a document field a rule depends
// on but which is absent or blank.
func MissingField(field string) *TemplateError {
	return &TemplateError{Field: field}
}

// MissingRule builds the TemplateError for a program that lacks a rule the
// document requires.
func MissingRule(rule string) *TemplateError {
	return &TemplateError{Rule: rule}
}

// RuleFailed wraps an engine failure while evaluating a program rule.
func RuleFailed(rule string, err error) *TemplateError {
	return &TemplateError{Rule: rule, Err: err}
}
