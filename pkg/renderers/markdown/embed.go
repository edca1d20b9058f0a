package markdown

import (
	"embed"
	"io/fs"
)

//go:embed templates/rule.yaml
var templates embed.FS

// TemplatesFS exposes the embedded template-program bundle.
func TemplatesFS() fs.FS {
	return templates
}

// DefaultProgramBytes returns the raw bytes of the built-in template
// program.
func DefaultProgramBytes() []byte {
	data, err := templates.ReadFile("templates/rule.yaml")
	if err != nil {
		// The file is embedded at build time; failing to read it is a
		// packaging bug, not a runtime condition.
		panic(err)
	}
	return data
}

// DefaultProgram parses the built-in template program.
func DefaultProgram() *Program {
	return MustParseProgram(DefaultProgramBytes())
}
