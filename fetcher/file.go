package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileFetcher reads artifacts from a directory tree.
type FileFetcher struct {
	fsys fs.FS
}

func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{fsys: os.DirFS(dir)}
}

// NewFSFetcher reads artifacts from an arbitrary fs.FS.
func NewFSFetcher(fsys fs.FS) *FileFetcher {
	return &FileFetcher{fsys: fsys}
}

func (f *FileFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("invalid artifact path %q", path)
	}

	data, err := fs.ReadFile(f.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
