package conformance

import "fmt"

// Violation names a structural invariant the rendered text fails to meet.
// Line is 1-based; zero means the violation concerns the document as a
// whole.
type Violation struct {
	Rule    string `json:"rule"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", v.Rule, v.Line, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Rule, v.Message)
}

// Rule names reported by Check. Each predicate owns one name so callers can
// filter or assert on specific invariants.
const (
	RuleFrontmatterClosed   = "frontmatter-closed"
	RuleMainTitle           = "main-title"
	RuleRoleHeading         = "role-heading"
	RuleGoalHeading         = "goal-heading"
	RuleHeadingSpacing      = "heading-spacing"
	RuleTOCPresent          = "toc-present"
	RuleExampleHeadings     = "example-headings"
	RuleExampleNumbering    = "example-numbering"
	RuleTOCAgreement        = "toc-agreement"
	RuleExampleBody         = "example-body"
	RuleFenceBalance        = "fence-balance"
	RuleGoodMarker          = "good-marker"
	RuleBadMarker           = "bad-marker"
	RuleOutputFormatBullets = "output-format-bullets"
	RuleSafeguardsBullets   = "safeguards-bullets"
	RuleSafeguardCommand    = "safeguard-command"
)
