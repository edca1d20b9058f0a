package loader

import (
	"context"
	"errors"

	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
)

// Loader implements pkgrule.Loader by delegating to file or fs.FS
// strategies. Construction helpers live in the top-level rulegen package.
type Loader struct {
	fs fsHolder
}

// Ensure the implementation satisfies the public interface.
var _ pkgrule.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgrule.LoaderOptions) pkgrule.Loader {
	return &Loader{fs: fsHolder{fsys: options.FileSystem}}
}

// Load fetches a document from the provided source and wraps it in a
// Document. Read failures surface as *rule.PathError.
func (l *Loader) Load(ctx context.Context, src pkgrule.Source) (pkgrule.Document, error) {
	if src == nil {
		return pkgrule.Document{}, errors.New("rule loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgrule.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgrule.SourceKindFS:
		data, err = l.fs.read(ctx, src.Location())
	default:
		err = errors.New("rule loader: unsupported source kind")
	}
	if err != nil {
		return pkgrule.Document{}, err
	}

	return pkgrule.NewDocument(src, data)
}
