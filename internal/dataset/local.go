package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalFetcher copies files from a directory on disk
type LocalFetcher struct {
	dir string
}

// NewLocalFetcher creates a fetcher reading from dir
func NewLocalFetcher(dir string) *LocalFetcher {
	return &LocalFetcher{dir: dir}
}

// Open opens name inside the directory
func (l *LocalFetcher) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(l.dir, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to open local file: %w", err)
	}
	return f, nil
}

// Close is a no-op
func (l *LocalFetcher) Close() error {
	return nil
}
