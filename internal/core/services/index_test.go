package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

func TestIndexWriter_AssignsPositionalIDs(t *testing.T) {
	idx := newMockIndex()
	w := NewIndexWriter(idx, 2)

	err := w.Write(context.Background(), "resume", []domain.Vector{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)

	records := idx.upserts["resume"]
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, domain.ChunkID(i), r.ID)
	}
	assert.Equal(t, domain.Vector{0, 1}, records[1].Values)
}

func TestIndexWriter_Empty(t *testing.T) {
	idx := newMockIndex()
	require.NoError(t, NewIndexWriter(idx, 2).Write(context.Background(), "resume", nil))
	assert.Empty(t, idx.upserts)
}

func TestIndexWriter_DimensionMismatch(t *testing.T) {
	tests := []struct {
		name    string
		dims    int
		vectors []domain.Vector
	}{
		{"against embedder dimension", 3, []domain.Vector{{1, 0}}},
		{"inconsistent batch", 0, []domain.Vector{{1, 0}, {1, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := newMockIndex()
			err := NewIndexWriter(idx, tt.dims).Write(context.Background(), "resume", tt.vectors)
			assert.ErrorIs(t, err, domain.ErrIndexService)
			assert.Empty(t, idx.upserts)
		})
	}
}

func TestIndexWriter_UpsertError(t *testing.T) {
	idx := newMockIndex()
	idx.upsertErr = errors.New("503 service unavailable")

	err := NewIndexWriter(idx, 0).Write(context.Background(), "resume", []domain.Vector{{1}})
	assert.ErrorIs(t, err, domain.ErrIndexService)
	assert.Contains(t, err.Error(), "503")
}

func TestIndexReader_SortsAndTruncates(t *testing.T) {
	idx := newMockIndex()
	idx.matches = []domain.Match{
		{ID: "chunk-3", Score: 0.2},
		{ID: "chunk-1", Score: 0.9},
		{ID: "chunk-0", Score: 0.5},
		{ID: "chunk-2", Score: 0.5},
	}

	got, err := NewIndexReader(idx).Query(context.Background(), "resume", []float32{1}, 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.Match{
		{ID: "chunk-1", Score: 0.9},
		{ID: "chunk-0", Score: 0.5},
		{ID: "chunk-2", Score: 0.5},
	}, got)
	assert.Equal(t, 3, idx.lastTopK)
}

func TestIndexReader_InvalidTopK(t *testing.T) {
	_, err := NewIndexReader(newMockIndex()).Query(context.Background(), "resume", []float32{1}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestIndexReader_QueryError(t *testing.T) {
	idx := newMockIndex()
	idx.queryErr = errors.New("timeout")

	_, err := NewIndexReader(idx).Query(context.Background(), "resume", []float32{1}, 5)
	assert.ErrorIs(t, err, domain.ErrIndexService)
}

func TestIndexReader_DimensionMismatchIsIndexError(t *testing.T) {
	ctx := context.Background()
	idx := memory.NewVectorIndex()
	require.NoError(t, NewIndexWriter(idx, 3).Write(ctx, "resume", []domain.Vector{{1, 0, 0}}))

	// A query embedded by a different model must not come back empty-handed.
	matches, err := NewIndexReader(idx).Query(ctx, "resume", []float32{1, 0}, 5)
	assert.ErrorIs(t, err, domain.ErrIndexService)
	assert.ErrorIs(t, err, similarity.ErrDimensionMismatch)
	assert.Empty(t, matches)
}
