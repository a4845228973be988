// Package fetcher reads the static artifacts the dashboards are built from.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"edaboard/api/config"
)

var ErrNotFound = errors.New("artifact not found")

// Fetcher reads one resource by its path relative to the artifact root.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// JSON fetches path and decodes it into v.
func JSON(ctx context.Context, f Fetcher, path string, v any) error {
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Text fetches path and returns its content as raw text.
func Text(ctx context.Context, f Fetcher, path string) (string, error) {
	data, err := f.Fetch(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New returns the Fetcher selected by cfg.ArtifactSource.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Fetcher, error) {
	switch cfg.ArtifactSource {
	case config.SourceFile:
		return NewFileFetcher(cfg.ArtifactDir), nil
	case config.SourceHTTP:
		return NewHTTPFetcher(cfg.ArtifactBaseURL, nil)
	case config.SourceS3:
		return NewS3FetcherFromEnv(ctx, cfg.S3Bucket, cfg.S3Prefix, log)
	default:
		return nil, fmt.Errorf("unsupported artifact source %q", cfg.ArtifactSource)
	}
}
