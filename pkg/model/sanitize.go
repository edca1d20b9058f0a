package model

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeDecorator strips raw HTML markup from the prose fields of a rule
// document so generated Markdown never carries live tags. Snippet code is
// left untouched: fenced blocks legitimately contain markup.
type SanitizeDecorator struct{}

// NewSanitizeDecorator returns the default text sanitizer.
func NewSanitizeDecorator() SanitizeDecorator {
	return SanitizeDecorator{}
}

// Decorate implements Decorator.
func (SanitizeDecorator) Decorate(doc *RuleDocument) error {
	if doc == nil {
		return nil
	}

	doc.Metadata.Name = sanitizeText(doc.Metadata.Name)
	doc.Metadata.Description = sanitizeText(doc.Metadata.Description)
	doc.Role = sanitizeText(doc.Role)
	doc.Goal = sanitizeText(doc.Goal)
	doc.Context = sanitizeText(doc.Context)

	sanitizeSlice(doc.Instructions)
	sanitizeSlice(doc.OutputFormat)
	sanitizeSlice(doc.Safeguards)

	for i := range doc.Examples {
		doc.Examples[i].Title = sanitizeText(doc.Examples[i].Title)
		doc.Examples[i].Description = sanitizeText(doc.Examples[i].Description)
	}

	return nil
}

func sanitizeSlice(items []string) {
	for i, item := range items {
		items[i] = sanitizeText(item)
	}
}

func sanitizeText(raw string) string {
	if raw == "" || !strings.Contains(raw, "<") {
		return raw
	}
	// bluemonday entity-escapes the text it keeps; unescape afterwards so
	// innocent prose like "a < b" survives the round trip.
	cleaned := sanitizer().Sanitize(raw)
	return html.UnescapeString(cleaned)
}

func sanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
