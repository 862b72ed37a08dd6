package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a process-local similarity index using cosine similarity.
type VectorIndex struct {
	mu      sync.RWMutex
	indexes map[string]map[string]domain.Vector
}

// NewVectorIndex creates an empty in-memory vector index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{
		indexes: make(map[string]map[string]domain.Vector),
	}
}

// Upsert stores copies of the records, replacing existing identifiers.
func (v *VectorIndex) Upsert(ctx context.Context, indexName string, records []domain.VectorRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	idx, ok := v.indexes[indexName]
	if !ok {
		idx = make(map[string]domain.Vector)
		v.indexes[indexName] = idx
	}
	for _, r := range records {
		idx[r.ID] = append(domain.Vector(nil), r.Values...)
	}
	return nil
}

// Query returns the topK most similar records. An unknown index yields no
// matches; stored vectors of another dimension fail the query.
func (v *VectorIndex) Query(ctx context.Context, indexName string, vector []float32, topK int) ([]domain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.mu.RLock()
	idx := v.indexes[indexName]
	records := make([]domain.VectorRecord, 0, len(idx))
	for id, values := range idx {
		records = append(records, domain.VectorRecord{ID: id, Values: values})
	}
	v.mu.RUnlock()

	return similarity.TopK(vector, records, topK)
}

// Count returns the number of vectors stored in indexName.
func (v *VectorIndex) Count(indexName string) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.indexes[indexName])
}

// Close releases nothing.
func (v *VectorIndex) Close() error {
	return nil
}
