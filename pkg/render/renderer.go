package render

import (
	"context"

	"github.com/goliatone/go-rulegen/pkg/model"
)

// Renderer converts a RuleDocument into a byte representation (Markdown for
// the default renderer). Render must be a pure function of the document and
// options: identical inputs produce byte-identical output, and no state
// survives across calls.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc model.RuleDocument, options RenderOptions) ([]byte, error)
}
