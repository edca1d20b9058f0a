package loader

import (
	"context"
	"errors"
	"io/fs"

	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
)

type fsHolder struct {
	fsys fs.FS
}

func (h fsHolder) read(ctx context.Context, name string) ([]byte, error) {
	if h.fsys == nil {
		return nil, errors.New("rule loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("rule loader: fs path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(h.fsys, name)
	if err != nil {
		return nil, &pkgrule.PathError{Op: "read", Path: name, Err: err}
	}
	return data, nil
}
