package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDocumentPath      = "document.path"
	keyChunkSize         = "chunking.size"
	keyChunkOverlap      = "chunking.overlap"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyEmbedTimeout      = "embedding.timeout_seconds"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMTimeout        = "llm.timeout_seconds"
	keyIndexBackend      = "index.backend"
	keyIndexName         = "index.name"
	keyIndexNamespace    = "index.namespace"
	keyIndexHost         = "index.host"
	keyIndexAPIKey       = "index.api_key"
	keyIndexDataDir      = "index.data_dir"
	keyRetrievalTopK     = "retrieval.top_k"
	keyRetrievalStrict   = "retrieval.strict"
	keyIngestConcurrency = "ingest.concurrency"
	keyIngestRate        = "ingest.requests_per_second"
	keyServerAddr        = "server.addr"
	keyServerTimeout     = "server.request_timeout_seconds"
	keyLogLevel          = "log.level"
)

// Environment variables that take precedence over the config file.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvPineconeAPIKey = "PINECONE_API_KEY"
	EnvDocument       = "RESUMECHAT_DOCUMENT"
	EnvIndex          = "RESUMECHAT_INDEX"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
	kindSeconds
	kindBackend
	kindLogLevel
)

var keyKinds = map[string]keyKind{
	keyDocumentPath:      kindString,
	keyChunkSize:         kindInt,
	keyChunkOverlap:      kindInt,
	keyEmbedModel:        kindString,
	keyEmbedBaseURL:      kindString,
	keyEmbedAPIKey:       kindString,
	keyEmbedTimeout:      kindSeconds,
	keyLLMModel:          kindString,
	keyLLMBaseURL:        kindString,
	keyLLMAPIKey:         kindString,
	keyLLMTimeout:        kindSeconds,
	keyIndexBackend:      kindBackend,
	keyIndexName:         kindString,
	keyIndexNamespace:    kindString,
	keyIndexHost:         kindString,
	keyIndexAPIKey:       kindString,
	keyIndexDataDir:      kindString,
	keyRetrievalTopK:     kindInt,
	keyRetrievalStrict:   kindBool,
	keyIngestConcurrency: kindInt,
	keyIngestRate:        kindFloat,
	keyServerAddr:        kindString,
	keyServerTimeout:     kindSeconds,
	keyLogLevel:          kindLogLevel,
}

// SettingsService resolves application settings from defaults, the config
// store and the environment, in increasing order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service reading the process environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(getenv func(string) string) *SettingsService {
	s.getenv = getenv
	return s
}

// Get retrieves current application settings and validates them.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Document: domain.DocumentSettings{
			Path: s.getString(keyDocumentPath, defaults.Document.Path),
		},
		Chunking: domain.ChunkConfig{
			Size:    s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap: s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
		},
		Embedding: domain.EmbeddingSettings{
			Model:   s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL: s.getString(keyEmbedBaseURL, defaults.Embedding.BaseURL),
			APIKey:  s.getString(keyEmbedAPIKey, ""),
			Timeout: s.getSeconds(keyEmbedTimeout, defaults.Embedding.Timeout),
		},
		LLM: domain.LLMSettings{
			Model:   s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL: s.getString(keyLLMBaseURL, defaults.LLM.BaseURL),
			APIKey:  s.getString(keyLLMAPIKey, ""),
			Timeout: s.getSeconds(keyLLMTimeout, defaults.LLM.Timeout),
		},
		Index: domain.IndexSettings{
			Backend:   domain.IndexBackend(s.getString(keyIndexBackend, defaults.Index.Backend.String())),
			Name:      s.getString(keyIndexName, defaults.Index.Name),
			Namespace: s.getString(keyIndexNamespace, ""),
			Host:      s.getString(keyIndexHost, ""),
			APIKey:    s.getString(keyIndexAPIKey, ""),
			DataDir:   s.getString(keyIndexDataDir, defaults.Index.DataDir),
		},
		Retrieval: domain.RetrievalSettings{
			TopK:   s.getInt(keyRetrievalTopK, defaults.Retrieval.TopK),
			Strict: s.getBool(keyRetrievalStrict, defaults.Retrieval.Strict),
		},
		Ingest: domain.IngestSettings{
			Concurrency:       s.getInt(keyIngestConcurrency, defaults.Ingest.Concurrency),
			RequestsPerSecond: s.getFloat(keyIngestRate, defaults.Ingest.RequestsPerSecond),
		},
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			RequestTimeout: s.getSeconds(keyServerTimeout, defaults.Server.RequestTimeout),
		},
		LogLevel: s.getString(keyLogLevel, defaults.LogLevel),
	}

	s.applyEnv(settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// applyEnv overlays environment variables on settings.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if key := s.getenv(EnvOpenAIAPIKey); key != "" {
		settings.Embedding.APIKey = key
		settings.LLM.APIKey = key
	}
	if key := s.getenv(EnvPineconeAPIKey); key != "" {
		settings.Index.APIKey = key
	}
	if path := s.getenv(EnvDocument); path != "" {
		settings.Document.Path = path
	}
	if name := s.getenv(EnvIndex); name != "" {
		settings.Index.Name = name
	}
}

// Set parses value according to the key's type, validates it, and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := keyKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindString:
		parsed = value
	case kindInt, kindSeconds:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %w", domain.ErrInvalidInput, key, err)
		}
		if kind == kindSeconds && n <= 0 {
			return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, key)
		}
		parsed = int64(n)
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %w", domain.ErrInvalidInput, key, err)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false: %w", domain.ErrInvalidInput, key, err)
		}
		parsed = b
	case kindBackend:
		backend := domain.IndexBackend(strings.ToLower(strings.TrimSpace(value)))
		if !backend.IsValid() {
			return fmt.Errorf("%w: %s must be one of pinecone, sqlite, memory", domain.ErrInvalidInput, key)
		}
		parsed = backend.String()
	case kindLogLevel:
		level := strings.ToLower(strings.TrimSpace(value))
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%w: %s must be one of debug, info, warn, error", domain.ErrInvalidInput, key)
		}
		parsed = level
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every recognised configuration key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings. The local data directory sits next
// to the config file.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	if p := s.configStore.Path(); p != "" {
		defaults.Index.DataDir = filepath.Join(filepath.Dir(p), "data")
	}
	return defaults
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val, _ := s.configStore.Get(key)
	str, ok := val.(string)
	if !ok || str == "" {
		return defaultVal
	}
	return str
}

// getInt returns the stored value when the key is present, so an explicit
// zero (for example chunking.overlap = 0) is honoured.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	n, ok := asInt(val)
	if !ok {
		return defaultVal
	}
	return n
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	f, ok := asFloat(val)
	if !ok {
		return defaultVal
	}
	return f
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, _ := s.configStore.Get(key)
	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val, _ := s.configStore.Get(key)
	n, ok := asInt(val)
	if !ok || n <= 0 {
		return defaultVal
	}
	return time.Duration(n) * time.Second
}

// asInt accepts the integer forms a value can take: int from Set, int64 from
// a TOML file, and whole float64 from hand-edited files.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
