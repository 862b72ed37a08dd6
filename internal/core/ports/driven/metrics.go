package driven

import "time"

// Reasons a resolver drops an identifier.
const (
	DropReasonMalformed  = "malformed"
	DropReasonOutOfRange = "out_of_range"
)

// MetricsRecorder receives pipeline observations.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	// ChunksIngested counts chunks upserted by an ingestion run.
	ChunksIngested(n int)

	// EmbeddingCall counts one embedding request by outcome ("ok" or "error").
	EmbeddingCall(outcome string)

	// IdentifiersDropped counts identifiers the resolver could not map to a chunk.
	IdentifiersDropped(reason string, n int)

	// FingerprintMismatch counts queries against an index built from different text or chunking.
	FingerprintMismatch()

	// ChatRequest records one chat request by HTTP status and duration.
	ChatRequest(status int, d time.Duration)
}
