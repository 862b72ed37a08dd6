package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// manifestStore implements driven.ManifestStore.
type manifestStore struct {
	store *Store
}

var _ driven.ManifestStore = (*manifestStore)(nil)

// Save stores the manifest, replacing the previous one for the index.
func (m *manifestStore) Save(ctx context.Context, manifest domain.Manifest) error {
	_, err := m.store.db.ExecContext(ctx, `
		INSERT INTO manifests (index_name, fingerprint, chunk_size, overlap, chunk_count,
			dimensions, embedding_model, document_path, run_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(index_name) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			chunk_size = excluded.chunk_size,
			overlap = excluded.overlap,
			chunk_count = excluded.chunk_count,
			dimensions = excluded.dimensions,
			embedding_model = excluded.embedding_model,
			document_path = excluded.document_path,
			run_id = excluded.run_id,
			created_at = excluded.created_at
	`, manifest.IndexName, manifest.Fingerprint, manifest.ChunkSize, manifest.Overlap,
		manifest.ChunkCount, manifest.Dimensions, manifest.EmbeddingModel,
		manifest.DocumentPath, manifest.RunID, manifest.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}
	return nil
}

// Get returns the manifest for indexName or domain.ErrNotFound.
func (m *manifestStore) Get(ctx context.Context, indexName string) (*domain.Manifest, error) {
	row := m.store.db.QueryRowContext(ctx, `
		SELECT index_name, fingerprint, chunk_size, overlap, chunk_count,
			dimensions, embedding_model, document_path, run_id, created_at
		FROM manifests WHERE index_name = ?
	`, indexName)

	var manifest domain.Manifest
	var createdAt sql.NullTime
	if err := row.Scan(&manifest.IndexName, &manifest.Fingerprint, &manifest.ChunkSize,
		&manifest.Overlap, &manifest.ChunkCount, &manifest.Dimensions,
		&manifest.EmbeddingModel, &manifest.DocumentPath, &manifest.RunID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: manifest for index %q", domain.ErrNotFound, indexName)
		}
		return nil, fmt.Errorf("scanning manifest: %w", err)
	}
	if createdAt.Valid {
		manifest.CreatedAt = createdAt.Time
	}
	return &manifest, nil
}
