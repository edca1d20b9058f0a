package rulegen

import (
	internalLoader "github.com/goliatone/go-rulegen/internal/rule/loader"
	internalParser "github.com/goliatone/go-rulegen/internal/rule/parser"
	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgrule.LoaderOption) pkgrule.Loader {
	cfg := pkgrule.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgrule.ParserOption) pkgrule.Parser {
	cfg := pkgrule.NewParserOptions(options...)
	return internalParser.New(cfg)
}
