package driving

import (
	"context"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// IngestService runs the ingestion flow: read, chunk, embed, upsert.
type IngestService interface {
	// Ingest indexes the configured document and reports what was written.
	Ingest(ctx context.Context) (*domain.IngestReport, error)
}
