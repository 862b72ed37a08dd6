package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// stubReader returns a fixed document.
type stubReader struct {
	content string
	err     error
}

func (r *stubReader) Read(_ context.Context, path string) (*domain.Document, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Document{Path: path, Content: r.content}, nil
}

// mockEmbedder returns a vector per text, or a deterministic default.
type mockEmbedder struct {
	vectors map[string][]float32
	failOn  string
	err     error
	dims    int
	delay   func(text string) time.Duration

	calls    atomic.Int32
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls.Add(1)
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if m.delay != nil {
		select {
		case <-time.After(m.delay(text)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil && (m.failOn == "" || m.failOn == text) {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return []float32{float32(len(text)), 1}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int           { return m.dims }
func (m *mockEmbedder) ModelName() string          { return "mock-embed" }
func (m *mockEmbedder) Ping(context.Context) error { return nil }
func (m *mockEmbedder) Close() error               { return nil }

// mockIndex records upserts and returns scripted matches.
type mockIndex struct {
	mu        sync.Mutex
	upserts   map[string][]domain.VectorRecord
	matches   []domain.Match
	upsertErr error
	queryErr  error
	lastTopK  int
}

func newMockIndex() *mockIndex {
	return &mockIndex{upserts: make(map[string][]domain.VectorRecord)}
}

func (m *mockIndex) Upsert(_ context.Context, indexName string, records []domain.VectorRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts[indexName] = append(m.upserts[indexName], records...)
	return nil
}

func (m *mockIndex) Query(_ context.Context, _ string, _ []float32, topK int) ([]domain.Match, error) {
	m.lastTopK = topK
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return append([]domain.Match(nil), m.matches...), nil
}

func (m *mockIndex) Close() error { return nil }

// mockLLM captures the messages it was sent.
type mockLLM struct {
	response string
	err      error
	messages []driven.ChatMessage
}

func (m *mockLLM) Complete(_ context.Context, messages []driven.ChatMessage, _ driven.CompletionOptions) (string, error) {
	m.messages = messages
	return m.response, m.err
}

func (m *mockLLM) ModelName() string          { return "mock-llm" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

// failingManifests fails every call.
type failingManifests struct{}

func (failingManifests) Save(context.Context, domain.Manifest) error {
	return errors.New("disk full")
}

func (failingManifests) Get(context.Context, string) (*domain.Manifest, error) {
	return nil, errors.New("disk full")
}

// spyMetrics counts observations.
type spyMetrics struct {
	mu         sync.Mutex
	ingested   int
	embedCalls map[string]int
	dropped    map[string]int
	mismatches int
}

func newSpyMetrics() *spyMetrics {
	return &spyMetrics{embedCalls: map[string]int{}, dropped: map[string]int{}}
}

func (s *spyMetrics) ChunksIngested(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingested += n
}

func (s *spyMetrics) EmbeddingCall(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.embedCalls[outcome]++
}

func (s *spyMetrics) IdentifiersDropped(reason string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropped[reason] += n
}

func (s *spyMetrics) FingerprintMismatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mismatches++
}

func (s *spyMetrics) ChatRequest(int, time.Duration) {}

// chunkTexts formats n distinct fixed-width chunk bodies for size-10 windows.
func chunkTexts(n int) string {
	var out string
	for i := 0; i < n; i++ {
		out += fmt.Sprintf("part-%04d|", i)
	}
	return out
}
