package loader

import (
	"context"
	"errors"
	"os"

	pkgrule "github.com/goliatone/go-rulegen/pkg/rule"
)

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("rule loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pkgrule.PathError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}
