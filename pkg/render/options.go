package render

// RenderOptions carries per-request rendering instructions.
type RenderOptions struct {
	// TemplateProgram holds the raw bytes of the template program driving
	// this render. Empty means the renderer falls back to its embedded
	// default program. Parsing the program fresh per call keeps engine
	// state call-scoped, so renderers can be shared across goroutines.
	TemplateProgram []byte
}
