package sqlite

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// vectorIndex implements driven.VectorIndex with a full scan per query.
type vectorIndex struct {
	store *Store
}

var _ driven.VectorIndex = (*vectorIndex)(nil)

// Upsert inserts or overwrites records in one transaction.
func (v *vectorIndex) Upsert(ctx context.Context, indexName string, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (index_name, id, dimensions, vals, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(index_name, id) DO UPDATE SET
			dimensions = excluded.dimensions,
			vals = excluded.vals,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, indexName, r.ID, len(r.Values), encodeVector(r.Values), now); err != nil {
			return fmt.Errorf("upserting %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// Query scores every stored vector of the index against vec. Vectors of
// another dimension fail the query with similarity.ErrDimensionMismatch.
func (v *vectorIndex) Query(ctx context.Context, indexName string, vec []float32, topK int) ([]domain.Match, error) {
	rows, err := v.store.db.QueryContext(ctx, `
		SELECT id, vals FROM vectors WHERE index_name = ?
	`, indexName)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var records []domain.VectorRecord
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		vals, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("vector %s: %w", id, err)
		}
		records = append(records, domain.VectorRecord{ID: id, Values: vals})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}

	return similarity.TopK(vec, records, topK)
}

// Count returns the number of vectors stored for indexName.
func (v *vectorIndex) Count(ctx context.Context, indexName string) (int, error) {
	var n int
	err := v.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vectors WHERE index_name = ?", indexName).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting vectors: %w", err)
	}
	return n, nil
}

// Close is a no-op; the Store owns the connection.
func (v *vectorIndex) Close() error {
	return nil
}

// encodeVector stores each component as 4 little-endian bytes.
func encodeVector(vals []float32) []byte {
	buf := make([]byte, 0, 4*len(vals))
	for _, f := range vals {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("corrupt vector blob of %d bytes", len(blob))
	}
	vals := make([]float32, len(blob)/4)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vals, nil
}
