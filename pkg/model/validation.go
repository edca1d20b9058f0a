package model

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Violation describes a single invariant failure found in a RuleDocument.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// Validate runs the document-scope invariants over a parsed rule. It returns
// every violation found rather than stopping at the first; callers decide
// whether any of them is fatal. Nothing is repaired.
func Validate(doc RuleDocument) []Violation {
	var out []Violation

	if strings.TrimSpace(doc.Metadata.Name) == "" {
		out = append(out, Violation{Field: "metadata.name", Message: "name is required"})
	}
	if strings.TrimSpace(doc.Metadata.Description) == "" {
		out = append(out, Violation{Field: "metadata.description", Message: "description is required"})
	}
	for i, glob := range doc.Metadata.Globs {
		if !doublestar.ValidatePattern(glob) {
			out = append(out, Violation{
				Field:   fmt.Sprintf("metadata.globs[%d]", i),
				Message: fmt.Sprintf("invalid glob pattern %q", glob),
			})
		}
	}

	if strings.TrimSpace(doc.Role) == "" {
		out = append(out, Violation{Field: "role", Message: "role text must not be empty"})
	}
	if strings.TrimSpace(doc.Goal) == "" {
		out = append(out, Violation{Field: "goal", Message: "goal text must not be empty"})
	}

	out = append(out, validateExamples(doc.Examples)...)
	out = append(out, validateBullets("outputFormat", doc.OutputFormat)...)
	out = append(out, validateBullets("safeguards", doc.Safeguards)...)
	out = append(out, validateBuildToolSafeguard(doc)...)

	return out
}

func validateExamples(examples []Example) []Violation {
	if len(examples) == 0 {
		return nil
	}

	var out []Violation
	var goods, bads int

	for i, example := range examples {
		field := fmt.Sprintf("examples[%d]", i)
		if strings.TrimSpace(example.Title) == "" {
			out = append(out, Violation{Field: field + ".title", Message: "title must not be empty"})
		}
		if strings.TrimSpace(example.Description) == "" {
			out = append(out, Violation{Field: field + ".description", Message: "description must not be empty"})
		}
		if number := example.Number(i); number != i+1 {
			out = append(out, Violation{
				Field:   field + ".index",
				Message: fmt.Sprintf("index %d breaks the contiguous sequence, expected %d", number, i+1),
			})
		}
		for j, snippet := range example.Snippets {
			snippetField := fmt.Sprintf("%s.snippets[%d]", field, j)
			if strings.TrimSpace(snippet.Language) == "" {
				out = append(out, Violation{Field: snippetField + ".language", Message: "language tag is required"})
			}
			if !snippet.Kind.Valid() {
				out = append(out, Violation{
					Field:   snippetField + ".kind",
					Message: fmt.Sprintf("unknown snippet kind %q", snippet.Kind),
				})
			}
			switch snippet.Kind {
			case SnippetKindGood:
				goods++
			case SnippetKindBad:
				bads++
			}
		}
	}

	// Good/bad balance holds at document scope, not per example.
	if goods == 0 {
		out = append(out, Violation{Field: "examples", Message: "at least one good snippet is required"})
	}
	if bads == 0 {
		out = append(out, Violation{Field: "examples", Message: "at least one bad snippet is required"})
	}

	return out
}

func validateBullets(field string, items []string) []Violation {
	if items == nil {
		return nil
	}

	var out []Violation
	if len(items) == 0 {
		out = append(out, Violation{Field: field, Message: "section is present but has no items"})
	}
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			out = append(out, Violation{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "bullet text must not be empty",
			})
		}
	}
	return out
}

func validateBuildToolSafeguard(doc RuleDocument) []Violation {
	domainText := strings.Join([]string{
		doc.Metadata.Name,
		doc.Metadata.Description,
		doc.Role,
		doc.Goal,
		doc.Context,
	}, "\n")

	tool, ok := DetectBuildTool(domainText)
	if !ok {
		return nil
	}

	for _, bullet := range doc.Safeguards {
		if tool.MentionsCommand(bullet) {
			return nil
		}
	}

	return []Violation{{
		Field:   "safeguards",
		Message: fmt.Sprintf("rule concerns %s but no safeguard mentions the %q command", tool.Name, tool.Command),
	}}
}
