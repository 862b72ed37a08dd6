package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/postprocessors/chunker"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestConfig is the subset of settings the ingestion flow needs.
type IngestConfig struct {
	DocumentPath      string
	IndexName         string
	Chunking          domain.ChunkConfig
	Concurrency       int
	RequestsPerSecond float64
}

// IngestService reads the document, chunks it, embeds every chunk and
// upserts the vectors under positional identifiers.
type IngestService struct {
	cfg       IngestConfig
	reader    driven.DocumentReader
	embedder  driven.EmbeddingService
	writer    *IndexWriter
	manifests driven.ManifestStore
	metrics   driven.MetricsRecorder
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewIngestService creates an ingestion service. manifests may be nil, in
// which case no manifest is recorded.
func NewIngestService(
	cfg IngestConfig,
	reader driven.DocumentReader,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	manifests driven.ManifestStore,
	metrics driven.MetricsRecorder,
) (*IngestService, error) {
	if err := cfg.Chunking.Validate(); err != nil {
		return nil, err
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}

	s := &IngestService{
		cfg:       cfg,
		reader:    reader,
		embedder:  embedder,
		writer:    NewIndexWriter(index, embedder.Dimensions()),
		manifests: manifests,
		metrics:   metricsOrNop(metrics),
		now:       time.Now,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(math.Max(1, math.Ceil(cfg.RequestsPerSecond)))
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return s, nil
}

// Ingest runs one ingestion pass over the configured document.
func (s *IngestService) Ingest(ctx context.Context) (*domain.IngestReport, error) {
	start := s.now()
	runID := uuid.New().String()

	logger.Section("Ingest")
	logger.Debug("ingest %s: document=%s index=%s size=%d overlap=%d",
		runID, s.cfg.DocumentPath, s.cfg.IndexName, s.cfg.Chunking.Size, s.cfg.Chunking.Overlap)

	doc, err := s.reader.Read(ctx, s.cfg.DocumentPath)
	if err != nil {
		return nil, err
	}

	chunks, err := chunker.Split(doc.Content, s.cfg.Chunking)
	if err != nil {
		return nil, err
	}
	logger.Debug("ingest %s: %d bytes -> %d chunks", runID, len(doc.Content), len(chunks))
	if len(chunks) == 0 {
		logger.Warn("document %s has no text; nothing to index", s.cfg.DocumentPath)
	}

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if err := s.writer.Write(ctx, s.cfg.IndexName, vectors); err != nil {
		return nil, err
	}
	logger.Info("Upserted %d embeddings to index '%s'", len(vectors), s.cfg.IndexName)
	s.metrics.ChunksIngested(len(vectors))

	dims := s.embedder.Dimensions()
	if len(vectors) > 0 {
		dims = len(vectors[0])
	}

	report := &domain.IngestReport{
		RunID:       runID,
		IndexName:   s.cfg.IndexName,
		ChunkCount:  len(chunks),
		Dimensions:  dims,
		Fingerprint: s.cfg.Chunking.Fingerprint(doc.Content),
		Duration:    s.now().Sub(start),
	}

	if err := s.saveManifest(ctx, doc, report); err != nil {
		return nil, err
	}

	return report, nil
}

// embedChunks embeds every chunk with bounded parallelism. The result is
// indexed by chunk position regardless of completion order; the first
// failure cancels the outstanding calls.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]domain.Vector, error) {
	vectors := make([]domain.Vector, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for _, c := range chunks {
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}
			}

			v, err := s.embedder.Embed(gctx, c.Text)
			if err != nil {
				s.metrics.EmbeddingCall("error")
				return fmt.Errorf("%w: chunk %d: %w", domain.ErrEmbeddingService, c.Index, err)
			}
			s.metrics.EmbeddingCall("ok")
			vectors[c.Index] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func (s *IngestService) saveManifest(ctx context.Context, doc *domain.Document, report *domain.IngestReport) error {
	if s.manifests == nil {
		return nil
	}

	m := domain.Manifest{
		IndexName:      report.IndexName,
		Fingerprint:    report.Fingerprint,
		ChunkSize:      s.cfg.Chunking.Size,
		Overlap:        s.cfg.Chunking.Overlap,
		ChunkCount:     report.ChunkCount,
		Dimensions:     report.Dimensions,
		EmbeddingModel: s.embedder.ModelName(),
		DocumentPath:   doc.Path,
		RunID:          report.RunID,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.manifests.Save(ctx, m); err != nil {
		return fmt.Errorf("save manifest for %q: %w", report.IndexName, err)
	}
	return nil
}

// metricsOrNop returns m, or a recorder that discards everything when m is nil.
func metricsOrNop(m driven.MetricsRecorder) driven.MetricsRecorder {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

type nopMetrics struct{}

func (nopMetrics) ChunksIngested(int)             {}
func (nopMetrics) EmbeddingCall(string)           {}
func (nopMetrics) IdentifiersDropped(string, int) {}
func (nopMetrics) FingerprintMismatch()           {}
func (nopMetrics) ChatRequest(int, time.Duration) {}
