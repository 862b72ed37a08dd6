package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore keeps the latest manifest per index in memory.
type ManifestStore struct {
	mu        sync.RWMutex
	manifests map[string]domain.Manifest
}

// NewManifestStore creates an empty manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{manifests: make(map[string]domain.Manifest)}
}

// Save replaces the manifest for manifest.IndexName.
func (s *ManifestStore) Save(_ context.Context, manifest domain.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifest.IndexName] = manifest
	return nil
}

// Get returns the manifest for indexName.
func (s *ManifestStore) Get(_ context.Context, indexName string) (*domain.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.manifests[indexName]
	if !ok {
		return nil, fmt.Errorf("manifest for %q: %w", indexName, domain.ErrNotFound)
	}
	return &m, nil
}
