package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// IndexWriter stores chunk embeddings under positional identifiers.
type IndexWriter struct {
	index      driven.VectorIndex
	dimensions int
}

// NewIndexWriter creates a writer. A positive dimensions value is enforced
// on every vector; zero accepts any length as long as all vectors agree.
func NewIndexWriter(index driven.VectorIndex, dimensions int) *IndexWriter {
	return &IndexWriter{index: index, dimensions: dimensions}
}

// Write upserts vectors[i] under ChunkID(i). Callers must pass embeddings
// in chunk order.
func (w *IndexWriter) Write(ctx context.Context, indexName string, vectors []domain.Vector) error {
	if len(vectors) == 0 {
		return nil
	}

	want := w.dimensions
	if want <= 0 {
		want = len(vectors[0])
	}

	records := make([]domain.VectorRecord, len(vectors))
	for i, v := range vectors {
		if len(v) != want {
			return fmt.Errorf("%w: vector %d has %d dimensions, expected %d",
				domain.ErrIndexService, i, len(v), want)
		}
		records[i] = domain.VectorRecord{ID: domain.ChunkID(i), Values: v}
	}

	if err := w.index.Upsert(ctx, indexName, records); err != nil {
		return fmt.Errorf("%w: upsert to %q: %w", domain.ErrIndexService, indexName, err)
	}
	return nil
}

// IndexReader queries the similarity index.
type IndexReader struct {
	index driven.VectorIndex
}

// NewIndexReader creates a reader.
func NewIndexReader(index driven.VectorIndex) *IndexReader {
	return &IndexReader{index: index}
}

// Query returns at most topK matches ordered by descending score.
func (r *IndexReader) Query(ctx context.Context, indexName string, vector []float32, topK int) ([]domain.Match, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive (got %d)", domain.ErrInvalidConfiguration, topK)
	}

	matches, err := r.index.Query(ctx, indexName, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: query %q: %w", domain.ErrIndexService, indexName, err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}
