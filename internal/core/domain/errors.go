package domain

import "errors"

// Domain errors represent failures a run or request cannot recover from.
// Adapters wrap their own errors with one of these so callers can classify
// failures with errors.Is without depending on adapter packages.
var (
	// ErrUnsupportedFormat indicates a document extension with no reader.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrIO indicates a document could not be opened or read.
	ErrIO = errors.New("document read failed")

	// ErrInvalidConfiguration indicates settings that cannot produce a valid run,
	// such as a chunk size not larger than its overlap.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidInput indicates malformed caller input, such as an empty query.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// Service Errors.

	// ErrEmbeddingService indicates the embedding model failed or was unreachable.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrIndexService indicates the similarity index failed or was unreachable.
	ErrIndexService = errors.New("index service error")

	// ErrGenerationService indicates the answer generation model failed or was unreachable.
	ErrGenerationService = errors.New("generation service error")

	// ErrIndexMismatch indicates the index was built from a different document
	// or chunking configuration than the one used to resolve its identifiers.
	ErrIndexMismatch = errors.New("index does not match document")
)
