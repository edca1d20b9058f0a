package gotemplate_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	gotemplate "github.com/goliatone/go-rulegen/pkg/render/template/gotemplate"
)

func TestEngine_RenderString(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("Hello {{ name }}", map[string]any{"name": "world"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RenderStringNestedMap(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	data := map[string]any{
		"metadata": map[string]any{"name": "null-safety"},
	}
	got, err := engine.RenderString("# {{ metadata.name }}", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "# null-safety" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RenderStringStructData(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	data := struct {
		Title    string `json:"title"`
		Language string `json:"language"`
	}{Title: "Wrapping", Language: "go"}

	got, err := engine.RenderString("{{ title }} [{{ language }}]", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Wrapping [go]" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RenderTemplateFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.tpl": &fstest.MapFile{Data: []byte("Hi {{ name }}")},
	}

	engine, err := gotemplate.New(gotemplate.WithFS(fsys))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderTemplate("greeting", map[string]any{"name": "there"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if got != "Hi there" {
		t.Fatalf("got %q", got)
	}

	// Render dispatches on content markers: no markers means template name.
	got, err = engine.Render("greeting", map[string]any{"name": "again"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi again" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RenderTemplateMissing(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithGlobalData(map[string]any{"product": "rulegen"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("by {{ product }}", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "by rulegen" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_BulletFilter(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	got, err := engine.RenderString("{{ items|bullet }}", map[string]any{"items": "one\ntwo"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "- one\n- two" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	err = engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	got, err := engine.RenderString("{{ word|shout }}", map[string]any{"word": "loud"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "LOUD" {
		t.Fatalf("got %q", got)
	}

	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return input, nil
	}); err == nil {
		t.Fatal("expected duplicate filter error")
	}
}

func TestEngine_TeeWriters(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var buf bytes.Buffer
	got, err := engine.RenderString("plain {{ x }}", map[string]any{"x": "text"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "plain text" || buf.String() != "plain text" {
		t.Fatalf("got %q, tee %q", got, buf.String())
	}
}

func TestEngine_NilEngine(t *testing.T) {
	var engine *gotemplate.Engine
	if _, err := engine.RenderString("x", nil); err == nil {
		t.Fatal("expected error from nil engine")
	}
	if err := engine.GlobalContext(map[string]any{"a": 1}); err == nil {
		t.Fatal("expected error from nil engine")
	}
}
