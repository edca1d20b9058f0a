package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
)

// updateEnv gates golden-file regeneration: set RULEGEN_UPDATE_GOLDEN=1 and
// rerun the tests to rewrite expectations.
const updateEnv = "RULEGEN_UPDATE_GOLDEN"

// Context returns the background context used by contract tests.
func Context() context.Context {
	return context.Background()
}

// LoadDocument reads a fixture and builds a rule.Document using a file
// source. Testing helpers fail fast to keep contract tests concise.
func LoadDocument(t *testing.T, path string) pkgrule.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgrule.Document, error) {
	if path == "" {
		return pkgrule.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgrule.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgrule.NewDocument(pkgrule.SourceFromFile(path), data)
	if err != nil {
		return pkgrule.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustReadGolden loads a golden file, failing the test when it is absent.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %q: %v (set %s=1 to create it)", path, err, updateEnv)
	}
	return data
}

// WriteMaybeGolden rewrites the golden file and reports true when golden
// updates are enabled; otherwise it does nothing.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()

	if os.Getenv(updateEnv) == "" {
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden %q: %v", path, err)
	}
	return true
}

// CompareGolden diffs want against got and returns a human-readable diff,
// empty when they match.
func CompareGolden(want, got string) string {
	return cmp.Diff(want, got)
}
