package model

// Decorator mutates a rule document after parsing but before rendering.
// Decorators run in registration order; returning an error aborts the
// generation call.
type Decorator interface {
	Decorate(doc *RuleDocument) error
}

// DecoratorFunc adapts a plain function to the Decorator interface.
type DecoratorFunc func(doc *RuleDocument) error

// Decorate implements Decorator.
func (f DecoratorFunc) Decorate(doc *RuleDocument) error {
	return f(doc)
}
