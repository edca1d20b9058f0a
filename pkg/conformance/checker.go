// Package conformance verifies the structural invariants of a rendered rule
// document. The checks are pure text-level predicates, independent of how
// the text was produced, so they catch defects in hand-edited templates as
// well as generator bugs.
package conformance

import (
	"strings"
)

// frontmatterWindow bounds the look-ahead for the closing frontmatter
// delimiter.
const frontmatterWindow = 10

// Check evaluates every structural predicate over the rendered text and
// returns the violations found, in predicate order. An empty slice means
// the document conforms.
func Check(renderedText string) []Violation {
	lines := strings.Split(renderedText, "\n")

	var out []Violation
	out = append(out, checkFrontmatter(lines)...)
	out = append(out, checkMainTitle(lines)...)
	out = append(out, checkRoleGoal(lines)...)
	out = append(out, checkHeadingSpacing(lines)...)
	out = append(out, checkExamples(lines)...)
	out = append(out, checkExampleBodies(lines)...)
	out = append(out, checkFences(lines)...)
	out = append(out, checkMarkers(lines)...)
	out = append(out, checkBulletSection(lines, "## Output Format", RuleOutputFormatBullets)...)
	out = append(out, checkSafeguards(lines, renderedText)...)
	return out
}

func checkFrontmatter(lines []string) []Violation {
	if len(lines) == 0 || lines[0] != "---" {
		return []Violation{{
			Rule:    RuleFrontmatterClosed,
			Line:    1,
			Message: `first line must be exactly "---"`,
		}}
	}

	limit := frontmatterWindow
	if limit > len(lines) {
		limit = len(lines)
	}
	for i := 1; i < limit; i++ {
		if lines[i] == "---" {
			return nil
		}
	}
	return []Violation{{
		Rule:    RuleFrontmatterClosed,
		Message: "frontmatter is never closed within the look-ahead window",
	}}
}

func checkMainTitle(lines []string) []Violation {
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			return nil
		}
	}
	return []Violation{{
		Rule:    RuleMainTitle,
		Message: "no level-1 heading found",
	}}
}

func checkRoleGoal(lines []string) []Violation {
	var out []Violation
	if !containsLine(lines, "## Role") {
		out = append(out, Violation{Rule: RuleRoleHeading, Message: `missing "## Role" heading`})
	}
	if !containsLine(lines, "## Goal") {
		out = append(out, Violation{Rule: RuleGoalHeading, Message: `missing "## Goal" heading`})
	}
	return out
}

func checkHeadingSpacing(lines []string) []Violation {
	var out []Violation
	first := true
	for i, line := range lines {
		if !strings.HasPrefix(line, "## ") {
			continue
		}
		if first {
			first = false
			continue
		}
		if i == 0 {
			continue
		}
		prev := lines[i-1]
		if prev != "" && prev != "---" {
			out = append(out, Violation{
				Rule:    RuleHeadingSpacing,
				Line:    i + 1,
				Message: "second-level heading is not preceded by a blank line",
			})
		}
	}
	return out
}

func checkExamples(lines []string) []Violation {
	if !containsLine(lines, "## Examples") {
		return nil
	}

	var out []Violation

	tocLine := indexOfLine(lines, "### Table of contents")
	if tocLine < 0 {
		out = append(out, Violation{
			Rule:    RuleTOCPresent,
			Message: `missing "### Table of contents" heading`,
		})
	}

	headings := exampleNumbers(lines, "### Example ")
	if len(headings) == 0 {
		out = append(out, Violation{
			Rule:    RuleExampleHeadings,
			Message: "no example headings found under ## Examples",
		})
		return out
	}

	for i, number := range headings {
		if number != i+1 {
			out = append(out, Violation{
				Rule:    RuleExampleNumbering,
				Message: numberingMessage(headings),
			})
			break
		}
	}

	if tocLine >= 0 {
		toc := tocEntryNumbers(lines, tocLine)
		if !equalInts(toc, headings) {
			out = append(out, Violation{
				Rule:    RuleTOCAgreement,
				Line:    tocLine + 1,
				Message: "table of contents entries do not match example headings",
			})
		}
	}

	return out
}

func checkExampleBodies(lines []string) []Violation {
	var out []Violation
	for i, line := range lines {
		if !isExampleHeading(line) {
			continue
		}

		titleSeen := false
		descriptionSeen := false
		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if strings.HasPrefix(next, "### ") || strings.HasPrefix(next, "## ") {
				break
			}
			if next == "" {
				continue
			}
			if !titleSeen {
				if strings.HasPrefix(next, "Title:") {
					titleSeen = true
					continue
				}
				break
			}
			if strings.HasPrefix(next, "Description:") {
				descriptionSeen = true
				break
			}
		}

		if !titleSeen || !descriptionSeen {
			out = append(out, Violation{
				Rule:    RuleExampleBody,
				Line:    i + 1,
				Message: "example heading is not followed by Title: and Description: lines",
			})
		}
	}
	return out
}

func checkFences(lines []string) []Violation {
	inFence := false
	openLine := 0
	for i, line := range lines {
		switch {
		case !inFence && strings.HasPrefix(line, "```") && strings.TrimSpace(line[3:]) != "":
			inFence = true
			openLine = i + 1
		case inFence && strings.TrimSpace(line) == "```":
			inFence = false
		}
	}
	if inFence {
		return []Violation{{
			Rule:    RuleFenceBalance,
			Line:    openLine,
			Message: "fenced code block is never closed",
		}}
	}
	return nil
}

func checkMarkers(lines []string) []Violation {
	hasExample := false
	for _, line := range lines {
		if isExampleHeading(line) {
			hasExample = true
			break
		}
	}
	if !hasExample {
		return nil
	}

	var out []Violation
	if !containsLine(lines, "**Good example:**") {
		out = append(out, Violation{Rule: RuleGoodMarker, Message: "no **Good example:** marker found"})
	}
	if !containsLine(lines, "**Bad example:**") {
		out = append(out, Violation{Rule: RuleBadMarker, Message: "no **Bad example:** marker found"})
	}
	return out
}

func checkBulletSection(lines []string, heading, rule string) []Violation {
	start := indexOfLine(lines, heading)
	if start < 0 {
		return nil
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			break
		}
		if strings.HasPrefix(lines[i], "- ") {
			return nil
		}
	}
	return []Violation{{
		Rule:    rule,
		Line:    start + 1,
		Message: heading + " section has no bullet items",
	}}
}
