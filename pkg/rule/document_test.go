package rule_test

import (
	"testing"

	"github.com/goliatone/go-rulegen/pkg/rule"
)

func TestNewDocument_Validation(t *testing.T) {
	if _, err := rule.NewDocument(nil, []byte("x")); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := rule.NewDocument(rule.SourceFromFile("a.yaml"), nil); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestDocument_DefensiveCopies(t *testing.T) {
	payload := []byte("role: r\n")
	doc, err := rule.NewDocument(rule.SourceFromFile("a.yaml"), payload)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	payload[0] = 'X'
	if string(doc.Raw()) != "role: r\n" {
		t.Fatal("document shares memory with the caller's slice")
	}

	raw := doc.Raw()
	raw[0] = 'X'
	if string(doc.Raw()) != "role: r\n" {
		t.Fatal("Raw does not return a copy")
	}
}

func TestSourceKinds(t *testing.T) {
	file := rule.SourceFromFile("dir//rule.yaml")
	if file.Kind() != rule.SourceKindFile {
		t.Fatalf("kind = %q", file.Kind())
	}
	if file.Location() != "dir/rule.yaml" {
		t.Fatalf("file paths are cleaned: %q", file.Location())
	}

	fsSrc := rule.SourceFromFS("rules/rule.yaml")
	if fsSrc.Kind() != rule.SourceKindFS {
		t.Fatalf("kind = %q", fsSrc.Kind())
	}
	if fsSrc.Location() != "rules/rule.yaml" {
		t.Fatalf("location = %q", fsSrc.Location())
	}
}
