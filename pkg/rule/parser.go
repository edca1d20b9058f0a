package rule

import (
	"context"

	"github.com/goliatone/go-rulegen/pkg/model"
)

// Parser converts a raw Document into the structured rule model. Parsing is
// deliberately lenient about missing optional fields: schema validation is a
// separate, optional stage, and the renderer must behave deterministically
// on unvalidated input.
type Parser interface {
	Parse(ctx context.Context, doc Document) (model.RuleDocument, error)
}

// ParserOptions configures parser behaviour.
type ParserOptions struct {
	// StrictFields rejects unknown top-level keys during decoding. Off by
	// default; the schema validator reports unknown elements with better
	// diagnostics.
	StrictFields bool
}

// ParserOption mutates ParserOptions prior to construction.
type ParserOption func(*ParserOptions)

// WithStrictFields toggles rejection of unknown document keys.
func WithStrictFields(strict bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.StrictFields = strict
	}
}

// NewParserOptions applies a set of ParserOption values and returns the
// resulting configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
