package domain

import "time"

// Manifest records what an index was built from.
// The similarity index itself carries no version tag, so the manifest is the
// only way to detect that ingestion and query disagree about chunk identifiers.
type Manifest struct {
	// IndexName is the similarity index the vectors were written to.
	IndexName string

	// Fingerprint is ChunkConfig.Fingerprint of the ingested text.
	Fingerprint string

	// ChunkSize and Overlap are the windowing parameters used.
	ChunkSize int
	Overlap   int

	// ChunkCount is the number of vectors upserted.
	ChunkCount int

	// Dimensions is the embedding length.
	Dimensions int

	// EmbeddingModel is the model that produced the vectors.
	EmbeddingModel string

	// DocumentPath is the file that was ingested.
	DocumentPath string

	// RunID identifies the ingestion run.
	RunID string

	// CreatedAt is when the run finished.
	CreatedAt time.Time
}
