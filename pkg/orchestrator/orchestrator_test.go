package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-rulegen/pkg/conformance"
	"github.com/goliatone/go-rulegen/pkg/model"
	"github.com/goliatone/go-rulegen/pkg/orchestrator"
	"github.com/goliatone/go-rulegen/pkg/render"
	"github.com/goliatone/go-rulegen/pkg/renderers/markdown"
	"github.com/goliatone/go-rulegen/pkg/schema"
)

const validDoc = `metadata:
  name: context-first
  description: Pass context to blocking calls
role: You review Go concurrency.
goal: Blocking operations accept a context.
`

const brokenDoc = `metadata:
  name: n
  description: d
goal: g
`

const nativeSchema = `elements:
  metadata: {min: 1, max: 1}
  role: {min: 1, max: 1, mustFollow: [metadata]}
  goal: {min: 1, max: 1, mustFollow: [role]}
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"rules/doc.yaml":      &fstest.MapFile{Data: []byte(validDoc)},
		"rules/broken.yaml":   &fstest.MapFile{Data: []byte(brokenDoc)},
		"templates/rule.yaml": &fstest.MapFile{Data: markdown.DefaultProgramBytes()},
		"schemas/rule.yaml":   &fstest.MapFile{Data: []byte(nativeSchema)},
	}
}

func TestOrchestrator_Generate(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithFileSystem(testFS()))

	output, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
		TemplatePath: "templates/rule.yaml",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, want := range []string{"# context-first", "## Role", "## Goal"} {
		if !strings.Contains(output, want) {
			t.Fatalf("missing %q in output:\n%s", want, output)
		}
	}
	if violations := conformance.Check(output); len(violations) != 0 {
		t.Fatalf("artifact fails conformance: %v", violations)
	}
}

func TestOrchestrator_Deterministic(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithFileSystem(testFS()))
	req := orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
		TemplatePath: "templates/rule.yaml",
		SchemaPath:   "schemas/rule.yaml",
	}

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if first != second {
		t.Fatal("identical inputs produced different artifacts")
	}
}

func TestOrchestrator_SchemaShortCircuit(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithFileSystem(testFS()))

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/broken.yaml",
		TemplatePath: "templates/rule.yaml",
		SchemaPath:   "schemas/rule.yaml",
	})

	var genErr *orchestrator.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	var schemaErr *schema.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected wrapped SchemaError, got %v", err)
	}
	if !strings.Contains(err.Error(), "schemas/rule.yaml") {
		t.Fatalf("error must name the schema path: %v", err)
	}
}

func TestOrchestrator_MissingDocument(t *testing.T) {
	gen := orchestrator.New()

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "missing/doc.yaml",
		TemplatePath: "missing/template.yaml",
	})

	var genErr *orchestrator.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
	for _, path := range []string{"missing/doc.yaml", "missing/template.yaml"} {
		if !strings.Contains(err.Error(), path) {
			t.Fatalf("error must carry %q: %v", path, err)
		}
	}
}

func TestOrchestrator_RequestPreconditions(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithFileSystem(testFS()))

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		TemplatePath: "templates/rule.yaml",
	})
	if err == nil || !strings.Contains(err.Error(), "document path") {
		t.Fatalf("expected document-path error, got %v", err)
	}

	_, err = gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
	})
	if err == nil || !strings.Contains(err.Error(), "template path") {
		t.Fatalf("expected template-path error, got %v", err)
	}

	var genErr *orchestrator.GenerationError
	if errors.As(err, &genErr) {
		t.Fatal("precondition failures are not generation errors")
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithFileSystem(testFS()))

	_, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
		TemplatePath: "templates/rule.yaml",
		Renderer:     "html",
	})
	if err == nil || !strings.Contains(err.Error(), `renderer "html"`) {
		t.Fatalf("expected unknown-renderer error, got %v", err)
	}
}

func TestOrchestrator_SanitizesByDefault(t *testing.T) {
	fsys := testFS()
	fsys["rules/tagged.yaml"] = &fstest.MapFile{Data: []byte(`metadata:
  name: tagged
  description: d
role: <script>alert('x')</script>Stay safe.
goal: g
`)}

	gen := orchestrator.New(orchestrator.WithFileSystem(fsys))
	output, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/tagged.yaml",
		TemplatePath: "templates/rule.yaml",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if strings.Contains(output, "<script>") {
		t.Fatalf("script tag survived sanitization:\n%s", output)
	}
	if !strings.Contains(output, "Stay safe.") {
		t.Fatalf("prose around the tag was lost:\n%s", output)
	}
}

func TestOrchestrator_WithoutSanitizer(t *testing.T) {
	fsys := testFS()
	fsys["rules/tagged.yaml"] = &fstest.MapFile{Data: []byte(`metadata:
  name: tagged
  description: d
role: <b>bold</b> role text
goal: g
`)}

	gen := orchestrator.New(
		orchestrator.WithFileSystem(fsys),
		orchestrator.WithoutSanitizer(),
	)
	output, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/tagged.yaml",
		TemplatePath: "templates/rule.yaml",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(output, "<b>bold</b>") {
		t.Fatalf("markup stripped despite WithoutSanitizer:\n%s", output)
	}
}

func TestOrchestrator_DecoratorsRunInOrder(t *testing.T) {
	upper := model.DecoratorFunc(func(doc *model.RuleDocument) error {
		doc.Goal = strings.ToUpper(doc.Goal)
		return nil
	})

	gen := orchestrator.New(
		orchestrator.WithFileSystem(testFS()),
		orchestrator.WithDecorators(upper),
	)
	output, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
		TemplatePath: "templates/rule.yaml",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(output, "BLOCKING OPERATIONS ACCEPT A CONTEXT.") {
		t.Fatalf("decorator did not run:\n%s", output)
	}
}

func TestOrchestrator_DecoratorFailureAborts(t *testing.T) {
	boom := model.DecoratorFunc(func(*model.RuleDocument) error {
		return errors.New("decorator exploded")
	})

	gen := orchestrator.New(
		orchestrator.WithFileSystem(testFS()),
		orchestrator.WithDecorators(boom),
	)
	_, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
		TemplatePath: "templates/rule.yaml",
	})

	var genErr *orchestrator.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "decorator exploded") {
		t.Fatalf("decorator error lost: %v", err)
	}
}

func TestOrchestrator_TemplatePathWinsOverRequestProgram(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithFileSystem(testFS()))

	output, err := gen.Generate(context.Background(), orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
		TemplatePath: "templates/rule.yaml",
		RenderOptions: render.RenderOptions{
			TemplateProgram: []byte("rules: not a real program"),
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(output, "# context-first") {
		t.Fatalf("template file program was not used:\n%s", output)
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := orchestrator.New(orchestrator.WithFileSystem(testFS()))
	_, err := gen.Generate(ctx, orchestrator.Request{
		DocumentPath: "rules/doc.yaml",
		TemplatePath: "templates/rule.yaml",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
