package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rulegen/pkg/model"
	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
)

// Parser implements pkgrule.Parser on top of yaml.v3. It decodes leniently:
// missing optional fields stay zero-valued and are not an error here, so
// unvalidated documents still reach the renderer, which reports missing
// required fields itself.
type Parser struct {
	options pkgrule.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgrule.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgrule.ParserOptions) pkgrule.Parser {
	return &Parser{options: options}
}

// Parse decodes a Document into the rule model.
func (p *Parser) Parse(ctx context.Context, doc pkgrule.Document) (model.RuleDocument, error) {
	if err := ctx.Err(); err != nil {
		return model.RuleDocument{}, err
	}
	raw := doc.Raw()
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.RuleDocument{}, errors.New("rule parser: document payload is empty")
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(p.options.StrictFields)

	var out model.RuleDocument
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return model.RuleDocument{}, errors.New("rule parser: document payload is empty")
		}
		return model.RuleDocument{}, fmt.Errorf("rule parser: decode document: %w", err)
	}

	return out, nil
}
