package rulegen_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rulegen "github.com/goliatone/go-rulegen"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestGenerate_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	docPath := writeFixture(t, dir, "doc.yaml", `metadata:
  name: table-driven-tests
  description: Prefer table-driven tests
  globs:
    - "**/*_test.go"
  alwaysApply: false
role: You review Go test suites.
goal: Repetitive cases become tables.
safeguards:
  - Keep each case independently runnable.
`)
	templatePath := writeFixture(t, dir, "template.yaml", string(rulegen.EmbeddedTemplateProgram()))

	output, err := rulegen.Generate(context.Background(), docPath, templatePath, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, want := range []string{
		"# table-driven-tests",
		"## Role",
		"## Goal",
		"## Safeguards",
		"- Keep each case independently runnable.",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("missing %q in output:\n%s", want, output)
		}
	}
	if violations := rulegen.Check(output); len(violations) != 0 {
		t.Fatalf("artifact fails conformance: %v", violations)
	}
}

func TestGenerate_MissingInputs(t *testing.T) {
	dir := t.TempDir()
	templatePath := writeFixture(t, dir, "template.yaml", string(rulegen.EmbeddedTemplateProgram()))

	_, err := rulegen.Generate(context.Background(), filepath.Join(dir, "absent.yaml"), templatePath, "")

	var genErr *rulegen.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.DocumentPath == "" || genErr.TemplatePath == "" {
		t.Fatalf("generation error must carry both input paths: %+v", genErr)
	}
}

func TestEmbeddedTemplateProgram(t *testing.T) {
	program := rulegen.EmbeddedTemplateProgram()
	if len(program) == 0 {
		t.Fatal("embedded template program is empty")
	}
	if !strings.Contains(string(program), "rules:") {
		t.Fatal("embedded template program has no rules mapping")
	}
}
