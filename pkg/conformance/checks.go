package conformance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-rulegen/pkg/model"
)

// checkSafeguards applies the bullet rule to ## Safeguards and, when the
// document concerns a detected build-tool domain, requires at least one
// bullet in that section to carry the tool's command-line token.
func checkSafeguards(lines []string, renderedText string) []Violation {
	start := indexOfLine(lines, "## Safeguards")
	if start < 0 {
		return nil
	}

	out := checkBulletSection(lines, "## Safeguards", RuleSafeguardsBullets)

	tool, ok := model.DetectBuildTool(renderedText)
	if !ok {
		return out
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			break
		}
		if strings.HasPrefix(lines[i], "- ") && tool.MentionsCommand(lines[i]) {
			return out
		}
	}

	out = append(out, Violation{
		Rule:    RuleSafeguardCommand,
		Line:    start + 1,
		Message: fmt.Sprintf("document concerns %s but no safeguard bullet mentions %q", tool.Name, tool.Command),
	})
	return out
}

func isExampleHeading(line string) bool {
	rest, ok := strings.CutPrefix(line, "### Example ")
	if !ok {
		return false
	}
	number, _, ok := strings.Cut(rest, ":")
	if !ok {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(number))
	return err == nil
}

// exampleNumbers extracts the N of every "### Example N:" heading in
// document order.
func exampleNumbers(lines []string, prefix string) []int {
	var out []int
	for _, line := range lines {
		rest, ok := strings.CutPrefix(line, prefix)
		if !ok {
			continue
		}
		numberText, _, ok := strings.Cut(rest, ":")
		if !ok {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(numberText))
		if err != nil {
			continue
		}
		out = append(out, number)
	}
	return out
}

// tocEntryNumbers extracts the N of every "- Example N:" bullet between the
// table-of-contents heading and the next heading.
func tocEntryNumbers(lines []string, tocLine int) []int {
	var out []int
	for i := tocLine + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "### ") || strings.HasPrefix(line, "## ") {
			break
		}
		rest, ok := strings.CutPrefix(line, "- Example ")
		if !ok {
			continue
		}
		numberText, _, ok := strings.Cut(rest, ":")
		if !ok {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(numberText))
		if err != nil {
			continue
		}
		out = append(out, number)
	}
	return out
}

func numberingMessage(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("example numbers [%s] do not form the sequence 1..%d",
		strings.Join(parts, " "), len(numbers))
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsLine(lines []string, target string) bool {
	return indexOfLine(lines, target) >= 0
}

func indexOfLine(lines []string, target string) int {
	for i, line := range lines {
		if line == target {
			return i
		}
	}
	return -1
}
