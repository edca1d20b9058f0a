package markdown

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rulegen/pkg/render"
)

// Template-program rule kinds. The set is closed: a program may omit rules
// its documents never need, but it cannot invent new kinds.
const (
	RuleFrontmatter     = "frontmatter"
	RuleTitle           = "title"
	RuleRole            = "role"
	RuleGoal            = "goal"
	RuleContext         = "context"
	RuleInstructions    = "instructions"
	RuleInstructionItem = "instruction_item"
	RuleExamples        = "examples"
	RuleTOC             = "toc"
	RuleTOCItem         = "toc_item"
	RuleExample         = "example"
	RuleExampleBody     = "example_body"
	RuleGoodMarker      = "good_marker"
	RuleBadMarker       = "bad_marker"
	RuleSnippet         = "snippet"
	RuleOutputFormat    = "output_format"
	RuleOutputItem      = "output_item"
	RuleSafeguards      = "safeguards"
	RuleSafeguardItem   = "safeguard_item"
)

var knownRules = map[string]struct{}{
	RuleFrontmatter:     {},
	RuleTitle:           {},
	RuleRole:            {},
	RuleGoal:            {},
	RuleContext:         {},
	RuleInstructions:    {},
	RuleInstructionItem: {},
	RuleExamples:        {},
	RuleTOC:             {},
	RuleTOCItem:         {},
	RuleExample:         {},
	RuleExampleBody:     {},
	RuleGoodMarker:      {},
	RuleBadMarker:       {},
	RuleSnippet:         {},
	RuleOutputFormat:    {},
	RuleOutputItem:      {},
	RuleSafeguards:      {},
	RuleSafeguardItem:   {},
}

// Program is a compiled template program: the declarative mapping from
// element kinds to the text patterns they emit. Programs are immutable and
// safe to share; engine state stays inside each Render call.
type Program struct {
	rules map[string]string
}

// ParseProgram decodes a template-program document. Unknown rule kinds and
// empty programs are malformed and fail with a TemplateError.
func ParseProgram(raw []byte) (*Program, error) {
	if len(raw) == 0 {
		return nil, &render.TemplateError{Err: errors.New("template program is empty")}
	}

	var doc struct {
		Rules map[string]string `yaml:"rules"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &render.TemplateError{Err: fmt.Errorf("parse template program: %w", err)}
	}
	if len(doc.Rules) == 0 {
		return nil, &render.TemplateError{Err: errors.New("template program declares no rules")}
	}

	for kind := range doc.Rules {
		if _, ok := knownRules[kind]; !ok {
			return nil, &render.TemplateError{
				Rule: kind,
				Err:  errors.New("unknown rule kind"),
			}
		}
	}

	rules := make(map[string]string, len(doc.Rules))
	for kind, fragment := range doc.Rules {
		rules[kind] = fragment
	}
	return &Program{rules: rules}, nil
}

// MustParseProgram panics when the program is malformed. Useful for the
// embedded default and fixtures.
func MustParseProgram(raw []byte) *Program {
	program, err := ParseProgram(raw)
	if err != nil {
		panic(err)
	}
	return program
}

// Rule looks up the text pattern for an element kind.
func (p *Program) Rule(kind string) (string, bool) {
	fragment, ok := p.rules[kind]
	return fragment, ok
}
