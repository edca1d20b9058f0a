package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	internalLoader "github.com/goliatone/go-rulegen/internal/rule/loader"
	internalParser "github.com/goliatone/go-rulegen/internal/rule/parser"
	"github.com/goliatone/go-rulegen/pkg/model"
	"github.com/goliatone/go-rulegen/pkg/render"
	"github.com/goliatone/go-rulegen/pkg/renderers/markdown"
	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
	"github.com/goliatone/go-rulegen/pkg/schema"
)

const defaultRendererName = "markdown"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader pkgrule.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom document parser.
func WithParser(parser pkgrule.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the parsed rule
// document before rendering, in registration order.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithoutSanitizer disables the default HTML-stripping decorator.
func WithoutSanitizer() Option {
	return func(o *Orchestrator) {
		o.sanitizerDisabled = true
	}
}

// WithFileSystem resolves request paths against an fs.FS instead of the
// operating system. Mostly useful for tests and embedded rule bundles.
func WithFileSystem(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.filesystem = fsys
	}
}

// WithValidatorOptions forwards options to the schema validator built for
// requests that carry a schema path.
func WithValidatorOptions(options ...schema.Option) Option {
	return func(o *Orchestrator) {
		o.validatorOptions = append(o.validatorOptions, options...)
	}
}

// WithLogger injects a logger for pipeline tracing. The default is a nop
// logger; the library never logs unless asked to.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from rule document to rendered
// Markdown. It applies sensible defaults (markdown renderer, embedded
// template program, text sanitizer) while remaining open to dependency
// injection for advanced callers. Each Generate call builds its own
// transformation state, so one Orchestrator can serve concurrent callers.
type Orchestrator struct {
	loader              pkgrule.Loader
	parser              pkgrule.Parser
	registry            *render.Registry
	defaultRenderer     string
	decorators          []model.Decorator
	validatorOptions    []schema.Option
	filesystem          fs.FS
	logger              zerolog.Logger
	sanitizerDisabled   bool
	sanitizerConfigured bool
	initialiseErr       error
	defaultsApplied     bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate one rule artifact.
type Request struct {
	// DocumentPath locates the rule definition. Required.
	DocumentPath string

	// TemplatePath locates the template program shared across many rule
	// definitions. Required.
	TemplatePath string

	// SchemaPath locates the schema used to validate the document before
	// rendering. Optional: callers may omit it and accept an unvalidated
	// document.
	SchemaPath string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request rendering instructions. The
	// template program loaded from TemplatePath always wins over any
	// program bytes set here.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → validator → parser → decorator → renderer
// sequence and returns the rendered text. Generation is all-or-nothing: any
// failure surfaces as a *GenerationError carrying every supplied input path
// and no output is returned.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		return "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := o.initialiseErr; err != nil {
		return "", err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return "", err
		}
	}

	if req.DocumentPath == "" {
		return "", errors.New("orchestrator: document path is required")
	}
	if req.TemplatePath == "" {
		return "", errors.New("orchestrator: template path is required")
	}

	wrap := func(err error) error {
		return &GenerationError{
			DocumentPath: req.DocumentPath,
			TemplatePath: req.TemplatePath,
			SchemaPath:   req.SchemaPath,
			Err:          err,
		}
	}

	doc, err := o.loader.Load(ctx, o.sourceFor(req.DocumentPath))
	if err != nil {
		return "", wrap(err)
	}
	o.logger.Debug().Str("document", req.DocumentPath).Msg("document loaded")

	templateDoc, err := o.loader.Load(ctx, o.sourceFor(req.TemplatePath))
	if err != nil {
		return "", wrap(err)
	}
	o.logger.Debug().Str("template", req.TemplatePath).Msg("template program loaded")

	if req.SchemaPath != "" {
		schemaDoc, err := o.loader.Load(ctx, o.sourceFor(req.SchemaPath))
		if err != nil {
			return "", wrap(err)
		}
		validator, err := schema.New(schemaDoc.Raw(), o.validatorOptions...)
		if err != nil {
			return "", wrap(err)
		}
		// A validation failure short-circuits: the renderer never runs.
		if err := validator.Validate(doc.Raw()); err != nil {
			return "", wrap(err)
		}
		o.logger.Debug().Str("schema", req.SchemaPath).Msg("document validated")
	}

	parsed, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return "", wrap(err)
	}

	if err := o.applyDecorators(&parsed); err != nil {
		return "", wrap(err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return "", wrap(err)
	}

	options := req.RenderOptions
	options.TemplateProgram = templateDoc.Raw()

	output, err := renderer.Render(ctx, parsed, options)
	if err != nil {
		return "", wrap(err)
	}
	o.logger.Debug().
		Str("document", req.DocumentPath).
		Str("renderer", renderer.Name()).
		Int("bytes", len(output)).
		Msg("rule rendered")

	return string(output), nil
}

func (o *Orchestrator) sourceFor(path string) pkgrule.Source {
	if o.filesystem != nil {
		return pkgrule.SourceFromFS(path)
	}
	return pkgrule.SourceFromFile(path)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(doc *model.RuleDocument) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(doc); err != nil {
			return fmt.Errorf("orchestrator: decorate document: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgrule.NewLoaderOptions(pkgrule.WithFileSystem(o.filesystem)))
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgrule.NewParserOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := markdown.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.ensureSanitizer()

	o.defaultsApplied = true
}

func (o *Orchestrator) ensureSanitizer() {
	if o.sanitizerConfigured {
		return
	}
	o.sanitizerConfigured = true

	if o.sanitizerDisabled {
		return
	}
	o.decorators = append([]model.Decorator{model.NewSanitizeDecorator()}, o.decorators...)
}
