// Package similarity ranks stored vectors against a query for the local
// index backends.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// Cosine returns the cosine similarity of a and b, or 0 when the lengths
// differ or either vector has zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// ErrDimensionMismatch reports a query vector whose length differs from the
// vectors stored in the index, typically after embedding.model was changed
// without re-ingesting.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// TopK scores every record against query and returns the best k, highest
// score first. Ties are ordered by chunk position ("chunk-2" before
// "chunk-10"), falling back to identifier order for other ids. A record of a
// different length than query fails the whole query.
func TopK(query []float32, records []domain.VectorRecord, k int) ([]domain.Match, error) {
	matches := make([]domain.Match, 0, len(records))
	for _, r := range records {
		if len(r.Values) != len(query) {
			return nil, fmt.Errorf("%w: index holds %d-dimensional vectors, query has %d",
				ErrDimensionMismatch, len(r.Values), len(query))
		}
		matches = append(matches, domain.Match{ID: r.ID, Score: Cosine(query, r.Values)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return lessID(matches[i].ID, matches[j].ID)
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

func lessID(a, b string) bool {
	ia, okA := domain.ParseChunkID(a)
	ib, okB := domain.ParseChunkID(b)
	if okA && okB {
		return ia < ib
	}
	return a < b
}
