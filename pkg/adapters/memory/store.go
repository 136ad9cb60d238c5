// Package memory provides an in-memory GraphStore, used by tests and as
// the default backend for ephemeral editing sessions.
package memory

import (
	"context"
	"sync"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// Store implements ports.GraphStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Graph
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Graph),
	}
}

// Save persists the graph in memory.
func (s *Store) Save(ctx context.Context, key string, g domain.Graph) error {
	// Deep copy so the caller cannot mutate the stored document afterwards.
	copied := g.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load retrieves the graph from memory.
func (s *Store) Load(ctx context.Context, key string) (domain.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.data[key]
	if !ok {
		return domain.Graph{}, domain.ErrGraphNotFound
	}

	// Copy on read so the caller can't reach into stored state by pointer.
	return g.Clone(), nil
}

// Delete removes the graph.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}
