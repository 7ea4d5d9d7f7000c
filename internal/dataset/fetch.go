package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Yates-Labs/bikeshare/internal/config"
)

// Fetcher copies named files from a source into a destination directory
type Fetcher interface {
	// Open returns a reader for one file of the source.
	// name is relative to the source's directory.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Close releases anything held by the fetcher
	Close() error
}

// Result records the outcome for one city file
type Result struct {
	City  string
	File  string
	Bytes int64
	Err   error
}

// NewFetcher builds the fetcher for src.
// token authenticates GitHub requests and may be empty.
func NewFetcher(ctx context.Context, src Source, token string, logger *zap.Logger) (Fetcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch src.Kind {
	case SourceGitHub:
		return NewGitHubFetcher(src, token, logger), nil
	case SourceGit:
		f, err := NewGitFetcher(ctx, src, logger)
		if err != nil {
			return nil, err
		}
		return f, nil
	case SourceLocal:
		return NewLocalFetcher(src.URL), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidSource, src.Kind)
	}
}

// FetchCities downloads every configured city file into cfg.DataDir.
// A failure on one city does not stop the others; the joined error is returned.
func FetchCities(ctx context.Context, f Fetcher, cfg config.Config, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	var results []Result
	var errs []error
	for _, city := range cfg.CityNames() {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("fetch cancelled: %w", err)
		}

		name := cfg.Cities[city]
		if filepath.IsAbs(name) {
			name = filepath.Base(name)
		}
		dest, err := cfg.CityFile(city)
		if err != nil {
			return results, err
		}
		n, err := fetchFile(ctx, f, filepath.ToSlash(name), dest)

		res := Result{City: city, File: dest, Bytes: n, Err: err}
		results = append(results, res)
		if err != nil {
			logger.Warn("failed to fetch city file", zap.String("city", city), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", city, err))
			continue
		}
		logger.Info("fetched city file", zap.String("city", city), zap.String("file", dest), zap.Int64("bytes", n))
	}

	return results, errors.Join(errs...)
}

// fetchFile writes the source file to dest via a temp file so a failed
// download never leaves a truncated CSV behind
func fetchFile(ctx context.Context, f Fetcher, name, dest string) (int64, error) {
	rc, err := f.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".fetch-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, rc)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", dest, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("failed to move %s into place: %w", dest, err)
	}
	return n, nil
}

// CityStatus reports whether a city's data file is present
type CityStatus struct {
	City   string
	Path   string
	Exists bool
	Size   int64
}

// Status checks the data file of every configured city
func Status(cfg config.Config) []CityStatus {
	statuses := make([]CityStatus, 0, len(cfg.Cities))
	for _, city := range cfg.CityNames() {
		path, _ := cfg.CityFile(city)
		st := CityStatus{City: city, Path: path}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			st.Exists = true
			st.Size = info.Size()
		}
		statuses = append(statuses, st)
	}
	return statuses
}
