// Package template defines the renderer-agnostic template engine seam.
// Renderers depend on the TemplateRenderer interface only; the pongo2-backed
// implementation lives in the gotemplate subpackage.
package template
