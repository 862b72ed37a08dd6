package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIndexBackend_IsValid tests all valid and invalid backends
func TestIndexBackend_IsValid(t *testing.T) {
	tests := []struct {
		backend  IndexBackend
		expected bool
	}{
		{IndexBackendPinecone, true},
		{IndexBackendSQLite, true},
		{IndexBackendMemory, true},
		{IndexBackend(""), false},
		{IndexBackend("weaviate"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestIndexBackend_RequiresAPIKey(t *testing.T) {
	assert.True(t, IndexBackendPinecone.RequiresAPIKey())
	assert.False(t, IndexBackendSQLite.RequiresAPIKey())
	assert.False(t, IndexBackendMemory.RequiresAPIKey())
}

func TestIndexBackend_Description(t *testing.T) {
	assert.Equal(t, "Pinecone (cloud)", IndexBackendPinecone.Description())
	assert.Equal(t, unknownDescription, IndexBackend("other").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "resume.pdf", s.Document.Path)
	assert.Equal(t, 100, s.Chunking.Size)
	assert.Equal(t, 25, s.Chunking.Overlap)
	assert.Equal(t, "text-embedding-ada-002", s.Embedding.Model)
	assert.Equal(t, "gpt-4o", s.LLM.Model)
	assert.Equal(t, IndexBackendPinecone, s.Index.Backend)
	assert.Equal(t, "resume-embeddings", s.Index.Name)
	assert.Equal(t, 20, s.Retrieval.TopK)
	assert.False(t, s.Retrieval.Strict)
	assert.False(t, s.Embedding.IsConfigured(), "no API key by default")
	assert.False(t, s.LLM.IsConfigured(), "no API key by default")

	require.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
		want   string
	}{
		{"empty document", func(s *AppSettings) { s.Document.Path = " " }, "document.path"},
		{"bad chunking", func(s *AppSettings) { s.Chunking.Overlap = s.Chunking.Size }, "chunk size"},
		{"bad backend", func(s *AppSettings) { s.Index.Backend = "faiss" }, "index.backend"},
		{"empty index", func(s *AppSettings) { s.Index.Name = "" }, "index.name"},
		{"zero top k", func(s *AppSettings) { s.Retrieval.TopK = 0 }, "retrieval.top_k"},
		{"zero concurrency", func(s *AppSettings) { s.Ingest.Concurrency = 0 }, "ingest.concurrency"},
		{"negative rate", func(s *AppSettings) { s.Ingest.RequestsPerSecond = -1 }, "requests_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Model: "m", APIKey: "k"}.IsConfigured())
	assert.False(t, EmbeddingSettings{Model: "m"}.IsConfigured())
	assert.False(t, EmbeddingSettings{APIKey: "k"}.IsConfigured())
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	assert.True(t, LLMSettings{Model: "m", APIKey: "k"}.IsConfigured())
	assert.False(t, LLMSettings{Model: "m"}.IsConfigured())
}
