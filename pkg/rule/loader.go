package rule

import (
	"context"
	"io/fs"
)

// Loader fetches rule documents, template programs, and schemas from their
// sources. Implementations live under internal/rule but satisfy this
// contract. Loaders never reach the network: generation is offline by
// design, and remote schema distribution is an external collaborator.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading fs-kind sources from an abstract
	// filesystem. File-kind sources always resolve against the operating
	// system.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs-kind sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level rulegen package to prevent import cycles.
