package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

func TestVectorIndex_UpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	err := idx.Upsert(ctx, "resume", []domain.VectorRecord{
		{ID: "chunk-0", Values: domain.Vector{1, 0, 0}},
		{ID: "chunk-1", Values: domain.Vector{0, 1, 0}},
		{ID: "chunk-2", Values: domain.Vector{0.7, 0.7, 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Count("resume"))

	matches, err := idx.Query(ctx, "resume", []float32{0, 1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "chunk-1", matches[0].ID)
	assert.Equal(t, "chunk-2", matches[1].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestVectorIndex_UpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	require.NoError(t, idx.Upsert(ctx, "resume", []domain.VectorRecord{{ID: "chunk-0", Values: domain.Vector{1, 0}}}))
	require.NoError(t, idx.Upsert(ctx, "resume", []domain.VectorRecord{{ID: "chunk-0", Values: domain.Vector{0, 1}}}))
	assert.Equal(t, 1, idx.Count("resume"))

	matches, err := idx.Query(ctx, "resume", []float32{0, 1}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestVectorIndex_CopiesInput(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	values := domain.Vector{1, 0}
	require.NoError(t, idx.Upsert(ctx, "resume", []domain.VectorRecord{{ID: "chunk-0", Values: values}}))
	values[0], values[1] = 0, 1

	matches, err := idx.Query(ctx, "resume", []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
}

func TestVectorIndex_IndexesAreSeparate(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	require.NoError(t, idx.Upsert(ctx, "a", []domain.VectorRecord{{ID: "chunk-0", Values: domain.Vector{1}}}))

	matches, err := idx.Query(ctx, "b", []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NoError(t, idx.Close())
}

func TestVectorIndex_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	require.NoError(t, idx.Upsert(ctx, "resume", []domain.VectorRecord{
		{ID: "chunk-0", Values: domain.Vector{1, 0, 0}},
		{ID: "chunk-1", Values: domain.Vector{0, 1, 0}},
	}))

	matches, err := idx.Query(ctx, "resume", []float32{1, 0}, 5)
	assert.ErrorIs(t, err, similarity.ErrDimensionMismatch)
	assert.Empty(t, matches)
}

func TestVectorIndex_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	idx := NewVectorIndex()

	assert.ErrorIs(t, idx.Upsert(ctx, "a", nil), context.Canceled)
	_, err := idx.Query(ctx, "a", []float32{1}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManifestStore(t *testing.T) {
	ctx := context.Background()
	store := NewManifestStore()

	_, err := store.Get(ctx, "resume")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, domain.Manifest{IndexName: "resume", Fingerprint: "abc", ChunkCount: 3}))
	require.NoError(t, store.Save(ctx, domain.Manifest{IndexName: "resume", Fingerprint: "def", ChunkCount: 4}))

	m, err := store.Get(ctx, "resume")
	require.NoError(t, err)
	assert.Equal(t, "def", m.Fingerprint)
	assert.Equal(t, 4, m.ChunkCount)
}
