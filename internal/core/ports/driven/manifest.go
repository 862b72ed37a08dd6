package driven

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// ManifestStore persists the latest ingestion manifest per index.
type ManifestStore interface {
	// Save stores the manifest, replacing any previous one for the same index.
	Save(ctx context.Context, manifest domain.Manifest) error

	// Get returns the manifest for indexName or domain.ErrNotFound.
	Get(ctx context.Context, indexName string) (*domain.Manifest, error)
}
