package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-rulegen/internal/rule/loader"
	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
)

func TestLoader_FileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rule.yaml")
	payload := []byte("metadata:\n  name: n\n")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(pkgrule.NewLoaderOptions())
	doc, err := l.Load(context.Background(), pkgrule.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if string(doc.Raw()) != string(payload) {
		t.Fatalf("payload mismatch: %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("location = %q, want %q", doc.Location(), path)
	}
}

func TestLoader_FileSourceMissing(t *testing.T) {
	l := loader.New(pkgrule.NewLoaderOptions())
	_, err := l.Load(context.Background(), pkgrule.SourceFromFile(filepath.Join(t.TempDir(), "absent.yaml")))

	var pathErr *pkgrule.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected PathError, got %v", err)
	}
	if pathErr.Op != "read" {
		t.Fatalf("op = %q, want read", pathErr.Op)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped fs.ErrNotExist, got %v", err)
	}
}

func TestLoader_FSSource(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/rule.yaml": &fstest.MapFile{Data: []byte("role: r\n")},
	}

	l := loader.New(pkgrule.NewLoaderOptions(pkgrule.WithFileSystem(fsys)))
	doc, err := l.Load(context.Background(), pkgrule.SourceFromFS("rules/rule.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "role: r\n" {
		t.Fatalf("payload mismatch: %q", doc.Raw())
	}
}

func TestLoader_FSSourceWithoutFilesystem(t *testing.T) {
	l := loader.New(pkgrule.NewLoaderOptions())
	_, err := l.Load(context.Background(), pkgrule.SourceFromFS("rules/rule.yaml"))
	if err == nil {
		t.Fatal("expected error when no filesystem is configured")
	}
}

func TestLoader_NilSource(t *testing.T) {
	l := loader.New(pkgrule.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(pkgrule.NewLoaderOptions())
	_, err := l.Load(ctx, pkgrule.SourceFromFile("irrelevant.yaml"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
