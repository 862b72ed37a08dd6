package driven

import "context"

// EmbeddingService maps text to vectors. Chunks and questions must go
// through the same service for their similarity scores to be comparable.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the vector length the index was (or will be) built with.
	Dimensions() int

	ModelName() string

	// Ping checks credentials and reachability without embedding anything.
	Ping(ctx context.Context) error

	Close() error
}
