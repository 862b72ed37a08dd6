// Package chunker splits document text into fixed-size overlapping windows.
//
// Windows are measured in characters (runes), so multi-byte text is never cut
// inside a rune. Chunk i starts at character i*(size-overlap) and ends at
// min(start+size, length); the final window may be shorter.
// The same text and configuration always produce the same chunks, which is
// what lets the query flow resolve "chunk-<i>" identifiers by re-chunking.
package chunker

import (
	"context"
	"fmt"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

// Processor splits document content into fixed-size chunks.
type Processor struct {
	cfg domain.ChunkConfig
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.cfg.Size = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.cfg.Overlap = overlap
	}
}

// WithConfig replaces both size and overlap.
func WithConfig(cfg domain.ChunkConfig) Option {
	return func(p *Processor) {
		p.cfg = cfg
	}
}

// New creates a chunker. Options are applied over domain.DefaultChunkConfig.
// An invalid combination is rejected rather than adjusted.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{cfg: domain.DefaultChunkConfig()}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Config returns the windowing parameters.
func (p *Processor) Config() domain.ChunkConfig {
	return p.cfg
}

// Process splits the document content into chunks.
func (p *Processor) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Split(doc.Content, p.cfg)
}

// Split divides text into windows of cfg.Size characters advancing by
// cfg.Size-cfg.Overlap. Empty text yields no chunks.
func Split(text string, cfg domain.ChunkConfig) ([]domain.Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	step := cfg.Step()
	n := len(runes)
	chunks := make([]domain.Chunk, 0, n/step+1)

	for start := 0; start < n; start += step {
		end := min(start+cfg.Size, n)
		chunks = append(chunks, domain.Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})
	}

	return chunks, nil
}
