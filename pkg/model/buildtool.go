package model

import "strings"

// BuildTool describes a build-tool domain a rule can concern, together with
// the command-line entry point a safeguard must mention.
type BuildTool struct {
	// Name labels the tool in violation messages.
	Name string

	// Tokens are the case-insensitive markers that place a document in this
	// tool's domain when any of them appears in the rule name or prose.
	Tokens []string

	// Command is the literal invocation token a safeguard bullet must carry.
	Command string
}

// buildTools is the fixed detection table shared by document validation and
// the structural conformance checker so both ends agree on the domain.
var buildTools = []BuildTool{
	{Name: "maven", Tokens: []string{"maven", "mvn", "pom.xml"}, Command: "mvn"},
	{Name: "gradle", Tokens: []string{"gradle", "gradlew"}, Command: "gradle"},
	{Name: "npm", Tokens: []string{"npm", "package.json"}, Command: "npm"},
	{Name: "make", Tokens: []string{"makefile"}, Command: "make"},
	{Name: "bazel", Tokens: []string{"bazel"}, Command: "bazel"},
}

// DetectBuildTool scans text for build-tool markers and returns the first
// matching tool in table order.
func DetectBuildTool(text string) (BuildTool, bool) {
	lowered := strings.ToLower(text)
	for _, tool := range buildTools {
		for _, token := range tool.Tokens {
			if strings.Contains(lowered, token) {
				return tool, true
			}
		}
	}
	return BuildTool{}, false
}

// MentionsCommand reports whether the bullet carries the tool's command-line
// invocation token.
func (t BuildTool) MentionsCommand(bullet string) bool {
	return strings.Contains(strings.ToLower(bullet), t.Command)
}
