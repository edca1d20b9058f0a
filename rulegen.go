// Package rulegen turns structured assistant-rule definitions into Markdown
// artifacts with guaranteed structural invariants. The heavy lifting lives
// in pkg/orchestrator (generation), pkg/schema (validation) and
// pkg/conformance (output checking); this package re-exports the common
// entry points.
package rulegen

import (
	"context"

	"github.com/goliatone/go-rulegen/pkg/conformance"
	"github.com/goliatone/go-rulegen/pkg/model"
	"github.com/goliatone/go-rulegen/pkg/orchestrator"
	"github.com/goliatone/go-rulegen/pkg/render"
)

// RuleDocument aliases the structured rule model for convenience.
type RuleDocument = model.RuleDocument

// RenderOptions carries per-request rendering instructions.
type RenderOptions = render.RenderOptions

// GenerationError is the wrapper type every failed generation call returns.
type GenerationError = orchestrator.GenerationError

// Violation is a structural conformance finding.
type Violation = conformance.Violation

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the rule document and template program (plus an optional
// schema; pass an empty string to skip validation), and returns the
// rendered Markdown. It is the simplest entry point for callers generating
// a single rule.
func Generate(ctx context.Context, documentPath, templatePath, schemaPath string, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		DocumentPath: documentPath,
		TemplatePath: templatePath,
		SchemaPath:   schemaPath,
	})
}

// Check runs the structural conformance checker over rendered text. The
// generation hot path never calls this; it is the caller-side quality gate.
func Check(renderedText string) []Violation {
	return conformance.Check(renderedText)
}
