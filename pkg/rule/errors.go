package rule

import "fmt"

// PathError reports that an input file could not be located or read. It is
// always fatal to the generation call it belongs to and never retried.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("rule loader: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
