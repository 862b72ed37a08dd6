package memory

import (
	"sync"

	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration in a map. Nothing is persisted, so Save and
// Load are no-ops; it backs tests and one-off runs.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// Get implements driven.ConfigStore.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set implements driven.ConfigStore.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save implements driven.ConfigStore.
func (s *ConfigStore) Save() error { return nil }

// Load implements driven.ConfigStore.
func (s *ConfigStore) Load() error { return nil }

// Path implements driven.ConfigStore.
func (s *ConfigStore) Path() string { return "" }
