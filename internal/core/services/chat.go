package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/postprocessors/chunker"
)

// Ensure ChatService implements the interfaces.
var (
	_ driving.ChatService     = (*ChatService)(nil)
	_ driving.DocumentService = (*ChatService)(nil)
)

// ChatConfig is the subset of settings the query flow needs.
type ChatConfig struct {
	DocumentPath string
	IndexName    string
	Chunking     domain.ChunkConfig
	TopK         int

	// Strict fails queries whose index manifest does not match the document.
	Strict bool
}

// ChatService answers questions from chunks of the reference document.
type ChatService struct {
	cfg       ChatConfig
	reader    driven.DocumentReader
	embedder  driven.EmbeddingService
	index     *IndexReader
	llm       driven.LLMService
	manifests driven.ManifestStore
	metrics   driven.MetricsRecorder
}

// NewChatService creates a chat service. manifests may be nil, which
// disables the fingerprint check.
func NewChatService(
	cfg ChatConfig,
	reader driven.DocumentReader,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	llm driven.LLMService,
	manifests driven.ManifestStore,
	metrics driven.MetricsRecorder,
) (*ChatService, error) {
	if err := cfg.Chunking.Validate(); err != nil {
		return nil, err
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive (got %d)", domain.ErrInvalidConfiguration, cfg.TopK)
	}

	return &ChatService{
		cfg:       cfg,
		reader:    reader,
		embedder:  embedder,
		index:     NewIndexReader(index),
		llm:       llm,
		manifests: manifests,
		metrics:   metricsOrNop(metrics),
	}, nil
}

// Ask embeds the query, retrieves matching chunks, and asks the generation
// model to answer from them.
func (s *ChatService) Ask(ctx context.Context, query string) (*domain.Answer, error) {
	logger.Section("Ask")

	retrieved, err := s.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, len(retrieved))
	for i, r := range retrieved {
		chunks[i] = r.Chunk
	}
	prompt := BuildPrompt(BuildContext(chunks), query)
	logger.Debug("ask: prompt is %d bytes from %d chunks", len(prompt), len(chunks))

	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: SystemInstruction},
		{Role: driven.RoleUser, Content: prompt},
	}
	response, err := s.llm.Complete(ctx, messages, driven.CompletionOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationService, err)
	}

	return &domain.Answer{Response: response, Prompt: prompt}, nil
}

// Retrieve runs the query flow up to chunk resolution. Results keep the
// index's order and carry the score each chunk was matched with.
func (s *ChatService) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}

	doc, err := s.reader.Read(ctx, s.cfg.DocumentPath)
	if err != nil {
		return nil, err
	}

	chunks, err := chunker.Split(doc.Content, s.cfg.Chunking)
	if err != nil {
		return nil, err
	}

	if err := s.checkFingerprint(ctx, doc.Content); err != nil {
		return nil, err
	}

	matches, err := s.index.Query(ctx, s.cfg.IndexName, vector, s.cfg.TopK)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}

	res := Resolve(ids, chunks)
	s.recordDrops(res)
	logger.Debug("retrieve: %d matches -> %d chunks", len(matches), len(res.Chunks))

	out := make([]domain.RetrievedChunk, len(res.Chunks))
	for i, c := range res.Chunks {
		out[i] = domain.RetrievedChunk{Chunk: c, Score: matches[res.Positions[i]].Score}
	}
	return out, nil
}

// Chunks reads the reference document and splits it with the configured window.
// The i-th chunk is the one stored under ChunkID(i).
func (s *ChatService) Chunks(ctx context.Context) ([]domain.Chunk, error) {
	doc, err := s.reader.Read(ctx, s.cfg.DocumentPath)
	if err != nil {
		return nil, err
	}
	return chunker.Split(doc.Content, s.cfg.Chunking)
}

// checkFingerprint compares the current document and chunking against the
// manifest written when the index was built.
func (s *ChatService) checkFingerprint(ctx context.Context, text string) error {
	if s.manifests == nil {
		return nil
	}

	m, err := s.manifests.Get(ctx, s.cfg.IndexName)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("no manifest for index %q; skipping fingerprint check", s.cfg.IndexName)
		return nil
	}
	if err != nil {
		logger.Warn("read manifest for index %q: %v", s.cfg.IndexName, err)
		return nil
	}

	current := s.cfg.Chunking.Fingerprint(text)
	if m.Fingerprint == current {
		return nil
	}

	s.metrics.FingerprintMismatch()
	msg := fmt.Sprintf("index %q was built with size=%d overlap=%d from a different document or configuration (now size=%d overlap=%d); chunk identifiers may not match",
		s.cfg.IndexName, m.ChunkSize, m.Overlap, s.cfg.Chunking.Size, s.cfg.Chunking.Overlap)
	if s.cfg.Strict {
		return fmt.Errorf("%w: %s", domain.ErrIndexMismatch, msg)
	}
	logger.Warn("%s", msg)
	return nil
}

func (s *ChatService) recordDrops(res ResolveResult) {
	if res.Dropped() == 0 {
		return
	}
	logger.Warn("resolver dropped %d identifiers (%d malformed, %d out of range)",
		res.Dropped(), res.Malformed, res.OutOfRange)
	s.metrics.IdentifiersDropped(driven.DropReasonMalformed, res.Malformed)
	s.metrics.IdentifiersDropped(driven.DropReasonOutOfRange, res.OutOfRange)
}
