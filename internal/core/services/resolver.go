package services

import (
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// ResolveResult is the outcome of mapping retrieved identifiers to chunks.
type ResolveResult struct {
	// Chunks are the resolved chunks in identifier order.
	Chunks []domain.Chunk

	// Positions holds, for each entry of Chunks, its position in the input ids.
	Positions []int

	// Malformed counts identifiers that are not of the form "chunk-<i>".
	Malformed int

	// OutOfRange counts well-formed identifiers past the end of the chunk sequence.
	OutOfRange int
}

// Dropped returns the number of identifiers that did not resolve.
func (r ResolveResult) Dropped() int {
	return r.Malformed + r.OutOfRange
}

// Resolve maps identifiers back to the chunks of the current document.
// Identifiers that cannot be parsed or point past the last chunk are
// skipped; the order of the rest is preserved.
func Resolve(ids []string, chunks []domain.Chunk) ResolveResult {
	res := ResolveResult{
		Chunks:    make([]domain.Chunk, 0, len(ids)),
		Positions: make([]int, 0, len(ids)),
	}

	for pos, id := range ids {
		i, ok := domain.ParseChunkID(id)
		if !ok {
			res.Malformed++
			continue
		}
		if i >= len(chunks) {
			res.OutOfRange++
			continue
		}
		res.Chunks = append(res.Chunks, chunks[i])
		res.Positions = append(res.Positions, pos)
	}

	return res
}
