package main

import (
	"fmt"
	"os"
	"path/filepath"

	rulegen "github.com/goliatone/go-rulegen"
)

// materializeEmbeddedProgram writes the built-in template program to a
// temporary file so the orchestrator's path-based contract applies
// uniformly whether or not the caller supplied -template.
func materializeEmbeddedProgram() (string, func(), error) {
	dir, err := os.MkdirTemp("", "rulegen-template-")
	if err != nil {
		return "", nil, fmt.Errorf("stage embedded template program: %w", err)
	}

	path := filepath.Join(dir, "rule.yaml")
	if err := os.WriteFile(path, rulegen.EmbeddedTemplateProgram(), 0o644); err != nil {
		os.RemoveAll(dir)
		return "", nil, fmt.Errorf("stage embedded template program: %w", err)
	}

	return path, func() { os.RemoveAll(dir) }, nil
}
