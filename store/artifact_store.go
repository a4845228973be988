// api/store/artifact_store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"edaboard/api/fetcher"
	"edaboard/api/models"
)

// ErrInvalidArtifact marks an artifact that was fetched and parsed but does not
// match its record type (missing fields, wrong types).
var ErrInvalidArtifact = errors.New("invalid artifact")

type ArtifactStore struct {
	Fetcher  fetcher.Fetcher
	validate *validator.Validate
}

func NewArtifactStore(f fetcher.Fetcher) *ArtifactStore {
	return &ArtifactStore{
		Fetcher:  f,
		validate: validator.New(),
	}
}

// GetEDAResults fetches and validates the retail summary.
func (s *ArtifactStore) GetEDAResults(ctx context.Context, path string) (*models.EDAResults, error) {
	var results models.EDAResults
	if err := fetcher.JSON(ctx, s.Fetcher, path, &results); err != nil {
		return nil, fmt.Errorf("failed to load EDA results: %w", err)
	}
	if err := s.validate.StructCtx(ctx, &results); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, path, err)
	}
	return &results, nil
}

// GetRecords fetches a records-oriented JSON array.
func (s *ArtifactStore) GetRecords(ctx context.Context, path string) (models.RecordSet, error) {
	var records models.RecordSet
	if err := fetcher.JSON(ctx, s.Fetcher, path, &records); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: %s: expected a JSON array", ErrInvalidArtifact, path)
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("%w: %s: record %d is not an object", ErrInvalidArtifact, path, i)
		}
	}
	return records, nil
}

// GetCategoryMapping fetches a label -> number object, keeping document order.
func (s *ArtifactStore) GetCategoryMapping(ctx context.Context, path string) (models.CategoryMapping, error) {
	var mapping models.CategoryMapping
	if err := fetcher.JSON(ctx, s.Fetcher, path, &mapping); err != nil {
		return nil, fmt.Errorf("failed to load category mapping: %w", err)
	}
	if mapping == nil {
		return nil, fmt.Errorf("%w: %s: expected a JSON object", ErrInvalidArtifact, path)
	}
	return mapping, nil
}

// GetText fetches a text resource such as the population CSV.
func (s *ArtifactStore) GetText(ctx context.Context, path string) (string, error) {
	text, err := fetcher.Text(ctx, s.Fetcher, path)
	if err != nil {
		return "", fmt.Errorf("failed to load text: %w", err)
	}
	return text, nil
}
