package model

// SnippetKind classifies a code snippet inside an example.
type SnippetKind string

const (
	SnippetKindGood    SnippetKind = "good"
	SnippetKindBad     SnippetKind = "bad"
	SnippetKindNeutral SnippetKind = "neutral"
)

// Valid reports whether the kind is one of the known snippet kinds.
func (k SnippetKind) Valid() bool {
	switch k {
	case SnippetKindGood, SnippetKindBad, SnippetKindNeutral:
		return true
	default:
		return false
	}
}

// Metadata identifies and scopes a rule. It maps onto the frontmatter block
// of the rendered document.
type Metadata struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Globs       []string `yaml:"globs,omitempty" json:"globs,omitempty"`
	AlwaysApply bool     `yaml:"alwaysApply" json:"alwaysApply"`
}

// Snippet is a single fenced code block inside an example.
type Snippet struct {
	Language string      `yaml:"language" json:"language"`
	Kind     SnippetKind `yaml:"kind" json:"kind"`
	Code     string      `yaml:"code" json:"code"`
}

// Example is one worked example of the rule in action. Index is optional in
// source documents; zero means "use the 1-based position in the sequence".
// An explicit value overrides the position, which is how defective documents
// are constructed for conformance testing.
type Example struct {
	Index       int       `yaml:"index,omitempty" json:"index,omitempty"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Snippets    []Snippet `yaml:"snippets,omitempty" json:"snippets,omitempty"`
}

// Number returns the effective example number: the explicit index when one
// was supplied, otherwise the 1-based position.
func (e Example) Number(position int) int {
	if e.Index > 0 {
		return e.Index
	}
	return position + 1
}

// RuleDocument is the structured representation of one assistant rule before
// rendering. Optional sequence fields distinguish "absent" (nil) from
// "present but empty" so validation can flag the latter.
type RuleDocument struct {
	Metadata     Metadata  `yaml:"metadata" json:"metadata"`
	Role         string    `yaml:"role" json:"role"`
	Goal         string    `yaml:"goal" json:"goal"`
	Context      string    `yaml:"context,omitempty" json:"context,omitempty"`
	Instructions []string  `yaml:"instructions,omitempty" json:"instructions,omitempty"`
	Examples     []Example `yaml:"examples,omitempty" json:"examples,omitempty"`
	OutputFormat []string  `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`
	Safeguards   []string  `yaml:"safeguards,omitempty" json:"safeguards,omitempty"`
}

// HasExamples reports whether the document carries at least one example.
func (d RuleDocument) HasExamples() bool {
	return len(d.Examples) > 0
}
