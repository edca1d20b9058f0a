package rulegen

import (
	"io/fs"

	"github.com/goliatone/go-rulegen/pkg/renderers/markdown"
)

// EmbeddedTemplates exposes the built-in template-program bundle so callers
// can reuse or extend it without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return markdown.TemplatesFS()
}

// EmbeddedTemplateProgram returns the raw bytes of the default template
// program, suitable for writing next to a rule collection as a starting
// point for customisation.
func EmbeddedTemplateProgram() []byte {
	return markdown.DefaultProgramBytes()
}
