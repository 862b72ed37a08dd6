package domain

import "time"

// Document is the raw text of a source file.
// It is read fresh for every ingestion run and every query and never mutated.
type Document struct {
	// Path is the file the content was read from.
	Path string

	// Content is the full extracted text.
	Content string
}

// Chunk is a fixed-size window of a Document.
// Its identity is purely positional: Index is the emission order of the
// window for a given (text, size, overlap) triple.
type Chunk struct {
	// Index is the zero-based position in the chunk sequence.
	Index int

	// Text is the substring covered by the window.
	Text string
}

// Vector is an embedding produced by the embedding service.
type Vector []float32

// VectorRecord pairs an identifier with its embedding for an index upsert.
type VectorRecord struct {
	ID     string
	Values Vector
}

// Match is a single nearest-neighbour hit returned by the similarity index.
type Match struct {
	// ID is the chunk identifier stored in the index.
	ID string

	// Score is the index's similarity score (higher is closer).
	Score float64
}

// RetrievedChunk is a resolved chunk together with the score it was matched with.
type RetrievedChunk struct {
	Chunk Chunk
	Score float64
}

// Answer is the output of the query flow.
type Answer struct {
	// Response is the generated completion, returned verbatim.
	Response string

	// Prompt is the exact user prompt sent to the generation model.
	Prompt string
}

// IngestReport summarises a completed ingestion run.
type IngestReport struct {
	RunID       string
	IndexName   string
	ChunkCount  int
	Dimensions  int
	Fingerprint string
	Duration    time.Duration
}
