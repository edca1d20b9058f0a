package markdown

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-rulegen/pkg/model"
	"github.com/goliatone/go-rulegen/pkg/render"
	rendertemplate "github.com/goliatone/go-rulegen/pkg/render/template"
	gotemplate "github.com/goliatone/go-rulegen/pkg/render/template/gotemplate"
)

// Option customises renderer construction.
type Option func(*config)

type config struct {
	program *Program
}

// WithProgram overrides the default template program used when a render
// request does not carry one of its own.
func WithProgram(program *Program) Option {
	return func(cfg *config) {
		if program != nil {
			cfg.program = program
		}
	}
}

// Renderer walks a rule document's element kinds in document order, selects
// the matching template-program rule for each, and joins the rendered blocks
// into a Markdown artifact. The walk is the structural guarantee: blocks are
// joined with exactly one blank line, so every second-level heading is
// preceded by a blank line (the title directly follows the frontmatter's
// closing delimiter).
type Renderer struct {
	program *Program
}

// Ensure the implementation satisfies the renderer contract.
var _ render.Renderer = (*Renderer)(nil)

// New constructs the markdown renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.program == nil {
		cfg.program = DefaultProgram()
	}

	return &Renderer{program: cfg.program}, nil
}

func (r *Renderer) Name() string {
	return "markdown"
}

func (r *Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Render produces the Markdown artifact. It is a pure function of the
// document and the template program: identical inputs yield byte-identical
// output. Engine state is created fresh per call, so a single Renderer can
// serve concurrent callers.
func (r *Renderer) Render(ctx context.Context, doc model.RuleDocument, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program := r.program
	if len(options.TemplateProgram) > 0 {
		parsed, err := ParseProgram(options.TemplateProgram)
		if err != nil {
			return nil, err
		}
		program = parsed
	}

	if err := requireFields(doc); err != nil {
		return nil, err
	}

	engine, err := gotemplate.New()
	if err != nil {
		return nil, render.RuleFailed("engine", err)
	}

	w := &walker{program: program, engine: engine}
	if err := w.walk(doc); err != nil {
		return nil, err
	}

	return []byte(strings.Join(w.blocks, "\n\n") + "\n"), nil
}

// requireFields rejects documents missing a field the template depends on.
// A missing role never renders as an empty section; the call fails instead.
func requireFields(doc model.RuleDocument) error {
	if strings.TrimSpace(doc.Metadata.Name) == "" {
		return render.MissingField("metadata.name")
	}
	if strings.TrimSpace(doc.Role) == "" {
		return render.MissingField("role")
	}
	if strings.TrimSpace(doc.Goal) == "" {
		return render.MissingField("goal")
	}
	return nil
}

// walker accumulates rendered blocks during one Render call.
type walker struct {
	program *Program
	engine  rendertemplate.TemplateRenderer
	blocks  []string
}

func (w *walker) walk(doc model.RuleDocument) error {
	metaCtx := map[string]any{
		"metadata": map[string]any{
			"name":        doc.Metadata.Name,
			"description": doc.Metadata.Description,
			"globs":       strings.Join(doc.Metadata.Globs, ", "),
			"alwaysApply": strconv.FormatBool(doc.Metadata.AlwaysApply),
		},
	}

	if err := w.emit(RuleFrontmatter, metaCtx); err != nil {
		return err
	}
	if err := w.emit(RuleTitle, metaCtx); err != nil {
		return err
	}
	if err := w.emit(RuleRole, map[string]any{"role": strings.TrimSpace(doc.Role)}); err != nil {
		return err
	}
	if err := w.emit(RuleGoal, map[string]any{"goal": strings.TrimSpace(doc.Goal)}); err != nil {
		return err
	}

	if strings.TrimSpace(doc.Context) != "" {
		if err := w.emit(RuleContext, map[string]any{"context": strings.TrimSpace(doc.Context)}); err != nil {
			return err
		}
	}

	if len(doc.Instructions) > 0 {
		if err := w.emit(RuleInstructions, nil); err != nil {
			return err
		}
		if err := w.emitItems(RuleInstructionItem, doc.Instructions); err != nil {
			return err
		}
	}

	if err := w.walkExamples(doc.Examples); err != nil {
		return err
	}

	if len(doc.OutputFormat) > 0 {
		if err := w.emit(RuleOutputFormat, nil); err != nil {
			return err
		}
		if err := w.emitItems(RuleOutputItem, doc.OutputFormat); err != nil {
			return err
		}
	}

	if len(doc.Safeguards) > 0 {
		if err := w.emit(RuleSafeguards, nil); err != nil {
			return err
		}
		if err := w.emitItems(RuleSafeguardItem, doc.Safeguards); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) walkExamples(examples []model.Example) error {
	if len(examples) == 0 {
		return nil
	}

	if err := w.emit(RuleExamples, nil); err != nil {
		return err
	}
	if err := w.emit(RuleTOC, nil); err != nil {
		return err
	}

	entries := make([]string, 0, len(examples))
	for i, example := range examples {
		rendered, err := w.render(RuleTOCItem, exampleContext(example, i))
		if err != nil {
			return err
		}
		entries = append(entries, rendered)
	}
	w.push(strings.Join(entries, "\n"))

	for i, example := range examples {
		exCtx := exampleContext(example, i)
		if err := w.emit(RuleExample, exCtx); err != nil {
			return err
		}
		if err := w.emit(RuleExampleBody, exCtx); err != nil {
			return err
		}
		for _, snippet := range example.Snippets {
			switch snippet.Kind {
			case model.SnippetKindGood:
				if err := w.emit(RuleGoodMarker, nil); err != nil {
					return err
				}
			case model.SnippetKindBad:
				if err := w.emit(RuleBadMarker, nil); err != nil {
					return err
				}
			}
			snCtx := map[string]any{
				"snippet": map[string]any{
					"language": snippet.Language,
					"code":     strings.TrimRight(snippet.Code, "\n"),
				},
			}
			if err := w.emit(RuleSnippet, snCtx); err != nil {
				return err
			}
		}
	}

	return nil
}

func exampleContext(example model.Example, position int) map[string]any {
	return map[string]any{
		"example": map[string]any{
			"number":      example.Number(position),
			"title":       example.Title,
			"description": example.Description,
		},
	}
}

// emit renders one rule and appends it as a block.
func (w *walker) emit(kind string, data map[string]any) error {
	rendered, err := w.render(kind, data)
	if err != nil {
		return err
	}
	w.push(rendered)
	return nil
}

// emitItems renders one rule per item and appends the group as a single
// block, preserving item order.
func (w *walker) emitItems(kind string, items []string) error {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		rendered, err := w.render(kind, map[string]any{"item": item})
		if err != nil {
			return err
		}
		lines = append(lines, rendered)
	}
	w.push(strings.Join(lines, "\n"))
	return nil
}

func (w *walker) render(kind string, data map[string]any) (string, error) {
	fragment, ok := w.program.Rule(kind)
	if !ok {
		return "", render.MissingRule(kind)
	}

	// pongo2 HTML-escapes interpolations by default; Markdown output wants
	// the raw text.
	wrapped := "{% autoescape off %}" + fragment + "{% endautoescape %}"

	rendered, err := w.engine.RenderString(wrapped, data)
	if err != nil {
		return "", render.RuleFailed(kind, err)
	}
	return strings.TrimRight(rendered, "\n"), nil
}

func (w *walker) push(block string) {
	if block == "" {
		return
	}
	w.blocks = append(w.blocks, block)
}
