package domain

import (
	"fmt"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// IndexBackend selects the similarity index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendPinecone is the hosted Pinecone similarity index.
	IndexBackendPinecone IndexBackend = "pinecone"

	// IndexBackendSQLite is a local brute-force index stored in SQLite.
	IndexBackendSQLite IndexBackend = "sqlite"

	// IndexBackendMemory is a process-local index, lost on exit.
	IndexBackendMemory IndexBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendPinecone, IndexBackendSQLite, IndexBackendMemory:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this backend needs credentials.
func (b IndexBackend) RequiresAPIKey() bool {
	return b == IndexBackendPinecone
}

// String returns the string representation.
func (b IndexBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b IndexBackend) Description() string {
	switch b {
	case IndexBackendPinecone:
		return "Pinecone (cloud)"
	case IndexBackendSQLite:
		return "SQLite (local file)"
	case IndexBackendMemory:
		return "Memory (process-local)"
	default:
		return unknownDescription
	}
}

// DocumentSettings locates the reference document.
type DocumentSettings struct {
	// Path is the .txt or .pdf file to ingest and resolve against.
	Path string
}

// EmbeddingSettings holds embedding model configuration.
type EmbeddingSettings struct {
	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key.
	APIKey string

	// Timeout bounds each embedding request.
	Timeout time.Duration
}

// IsConfigured returns true if the embedding model can be called.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.APIKey != "" && e.Model != ""
}

// LLMSettings holds generation model configuration.
type LLMSettings struct {
	// Model is the chat completion model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key.
	APIKey string

	// Timeout bounds each generation request.
	Timeout time.Duration
}

// IsConfigured returns true if the generation model can be called.
func (l LLMSettings) IsConfigured() bool {
	return l.APIKey != "" && l.Model != ""
}

// IndexSettings holds similarity index configuration.
type IndexSettings struct {
	// Backend selects the index implementation.
	Backend IndexBackend

	// Name is the index the vectors live in.
	Name string

	// Namespace partitions vectors inside a Pinecone index. Empty uses the default namespace.
	Namespace string

	// Host overrides Pinecone index host discovery.
	Host string

	// APIKey is the Pinecone API key.
	APIKey string

	// DataDir holds the SQLite database for the local backend and the manifest store.
	DataDir string
}

// RetrievalSettings controls the query flow.
type RetrievalSettings struct {
	// TopK is the number of nearest neighbours requested from the index.
	TopK int

	// Strict turns a manifest fingerprint mismatch into ErrIndexMismatch
	// instead of a warning.
	Strict bool
}

// IngestSettings controls how chunks are embedded.
type IngestSettings struct {
	// Concurrency caps in-flight embedding requests.
	Concurrency int

	// RequestsPerSecond throttles embedding requests. Zero disables throttling.
	RequestsPerSecond float64
}

// ServerSettings controls the HTTP API.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RequestTimeout bounds the handling of one chat request.
	RequestTimeout time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	Document  DocumentSettings
	Chunking  ChunkConfig
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Index     IndexSettings
	Retrieval RetrievalSettings
	Ingest    IngestSettings
	Server    ServerSettings

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// DefaultAppSettings returns settings with the values the resume chatbot was built around.
// Credentials are left empty and must come from the config file or environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Document: DocumentSettings{Path: "resume.pdf"},
		Chunking: DefaultChunkConfig(),
		Embedding: EmbeddingSettings{
			Model:   "text-embedding-ada-002",
			BaseURL: "https://api.openai.com/v1",
			Timeout: 60 * time.Second,
		},
		LLM: LLMSettings{
			Model:   "gpt-4o",
			BaseURL: "https://api.openai.com/v1",
			Timeout: 120 * time.Second,
		},
		Index: IndexSettings{
			Backend: IndexBackendPinecone,
			Name:    "resume-embeddings",
		},
		Retrieval: RetrievalSettings{TopK: 20},
		Ingest:    IngestSettings{Concurrency: 4},
		Server: ServerSettings{
			Addr:           ":8000",
			RequestTimeout: 60 * time.Second,
		},
		LogLevel: "info",
	}
}

// Validate checks settings that would otherwise fail deep inside a run.
// Credentials are not checked here; adapters reject missing keys when built.
func (s AppSettings) Validate() error {
	var problems []string

	if strings.TrimSpace(s.Document.Path) == "" {
		problems = append(problems, "document.path is required")
	}
	if err := s.Chunking.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if !s.Index.Backend.IsValid() {
		problems = append(problems, fmt.Sprintf("index.backend %q is not one of pinecone, sqlite, memory", s.Index.Backend))
	}
	if strings.TrimSpace(s.Index.Name) == "" {
		problems = append(problems, "index.name is required")
	}
	if s.Retrieval.TopK <= 0 {
		problems = append(problems, fmt.Sprintf("retrieval.top_k must be positive (got %d)", s.Retrieval.TopK))
	}
	if s.Ingest.Concurrency <= 0 {
		problems = append(problems, fmt.Sprintf("ingest.concurrency must be positive (got %d)", s.Ingest.Concurrency))
	}
	if s.Ingest.RequestsPerSecond < 0 {
		problems = append(problems, "ingest.requests_per_second must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(problems, "; "))
	}
	return nil
}
