// Package app is the composition root: it turns AppSettings into wired
// adapters and core services, and owns their lifecycles.
//
// Adapters are built lazily so commands that only touch configuration never
// need API keys, and each adapter is built at most once per process.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/ai"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/resumechat/internal/adapters/driven/vectorindex/pinecone"
	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/core/services"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/metrics"
	"github.com/custodia-labs/resumechat/internal/normalisers"
)

// Provider builds services from settings on first use.
type Provider struct {
	settings driving.SettingsService
	metrics  *metrics.Recorder

	newEmbedder func(domain.EmbeddingSettings) (driven.EmbeddingService, error)
	newLLM      func(domain.LLMSettings) (driven.LLMService, error)

	mu        sync.Mutex
	cfg       *domain.AppSettings
	reader    driven.DocumentReader
	embedder  driven.EmbeddingService
	llm       driven.LLMService
	index     driven.VectorIndex
	manifests driven.ManifestStore
	closers   []func() error
}

// Option configures a Provider.
type Option func(*Provider)

// WithEmbedder replaces the embedding service constructor.
func WithEmbedder(fn func(domain.EmbeddingSettings) (driven.EmbeddingService, error)) Option {
	return func(p *Provider) { p.newEmbedder = fn }
}

// WithLLM replaces the generation service constructor.
func WithLLM(fn func(domain.LLMSettings) (driven.LLMService, error)) Option {
	return func(p *Provider) { p.newLLM = fn }
}

// NewProvider creates a provider over the given settings service.
// A nil recorder gets a fresh private registry.
func NewProvider(settings driving.SettingsService, rec *metrics.Recorder, opts ...Option) *Provider {
	if rec == nil {
		rec = metrics.New()
	}
	p := &Provider{
		settings:    settings,
		metrics:     rec,
		newEmbedder: ai.CreateEmbeddingService,
		newLLM:      ai.CreateLLMService,
		reader:      normalisers.NewDefaultReader(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Metrics returns the recorder shared by every service of this provider.
func (p *Provider) Metrics() *metrics.Recorder {
	return p.metrics
}

// Settings returns the validated settings, loading them on first call.
func (p *Provider) Settings() (*domain.AppSettings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadSettings()
}

// Ingest builds the ingestion service.
func (p *Provider) Ingest() (driving.IngestService, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cfg, err := p.loadSettings()
	if err != nil {
		return nil, err
	}
	embedder, err := p.loadEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	if err := p.loadIndex(cfg); err != nil {
		return nil, err
	}

	return services.NewIngestService(services.IngestConfig{
		DocumentPath:      cfg.Document.Path,
		IndexName:         cfg.Index.Name,
		Chunking:          cfg.Chunking,
		Concurrency:       cfg.Ingest.Concurrency,
		RequestsPerSecond: cfg.Ingest.RequestsPerSecond,
	}, p.reader, embedder, p.index, p.manifests, p.metrics)
}

// Chat builds the query service.
func (p *Provider) Chat() (driving.ChatService, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cfg, err := p.loadSettings()
	if err != nil {
		return nil, err
	}
	embedder, err := p.loadEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	if p.llm == nil {
		llm, err := p.newLLM(cfg.LLM)
		if err != nil {
			return nil, err
		}
		p.llm = llm
		p.closers = append(p.closers, llm.Close)
	}
	if err := p.loadIndex(cfg); err != nil {
		return nil, err
	}

	return services.NewChatService(services.ChatConfig{
		DocumentPath: cfg.Document.Path,
		IndexName:    cfg.Index.Name,
		Chunking:     cfg.Chunking,
		TopK:         cfg.Retrieval.TopK,
		Strict:       cfg.Retrieval.Strict,
	}, p.reader, embedder, p.index, p.llm, p.manifests, p.metrics)
}

// Close releases every adapter built so far, in reverse order.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	p.closers = nil
	p.embedder, p.llm, p.index, p.manifests = nil, nil, nil, nil
	return errors.Join(errs...)
}

func (p *Provider) loadSettings() (*domain.AppSettings, error) {
	if p.cfg != nil {
		return p.cfg, nil
	}
	cfg, err := p.settings.Get()
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	return cfg, nil
}

func (p *Provider) loadEmbedder(cfg *domain.AppSettings) (driven.EmbeddingService, error) {
	if p.embedder != nil {
		return p.embedder, nil
	}
	embedder, err := p.newEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	p.embedder = embedder
	p.closers = append(p.closers, embedder.Close)
	return embedder, nil
}

// loadIndex builds the vector index and manifest store for the configured backend.
// Pinecone keeps its manifests in the local SQLite store.
func (p *Provider) loadIndex(cfg *domain.AppSettings) error {
	if p.index != nil {
		return nil
	}

	switch cfg.Index.Backend {
	case domain.IndexBackendMemory:
		logger.Warn("index.backend is memory: vectors are lost when the process exits")
		p.index = memory.NewVectorIndex()
		p.manifests = memory.NewManifestStore()

	case domain.IndexBackendSQLite:
		store, err := sqlite.NewStore(cfg.Index.DataDir)
		if err != nil {
			return fmt.Errorf("%w: open sqlite store: %w", domain.ErrIndexService, err)
		}
		p.closers = append(p.closers, store.Close)
		p.index = store.VectorIndex()
		p.manifests = store.ManifestStore()
		logger.Debug("sqlite index at %s", store.Path())

	case domain.IndexBackendPinecone:
		if cfg.Index.APIKey == "" {
			return fmt.Errorf("%w: index.api_key is not set (export PINECONE_API_KEY)", domain.ErrInvalidConfiguration)
		}
		idx, err := pinecone.NewIndex(pinecone.Config{
			APIKey:    cfg.Index.APIKey,
			Host:      cfg.Index.Host,
			Namespace: cfg.Index.Namespace,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
		}
		p.closers = append(p.closers, idx.Close)

		store, err := sqlite.NewStore(cfg.Index.DataDir)
		if err != nil {
			logger.Warn("manifest store unavailable, fingerprint checks disabled: %v", err)
		} else {
			p.closers = append(p.closers, store.Close)
			p.manifests = store.ManifestStore()
		}
		p.index = idx

	default:
		return fmt.Errorf("%w: unknown index backend %q", domain.ErrInvalidConfiguration, cfg.Index.Backend)
	}
	return nil
}
