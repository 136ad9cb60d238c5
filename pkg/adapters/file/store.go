// Package file provides a filesystem GraphStore: one JSON interchange
// document per graph, written atomically.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/codec"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// Store implements ports.GraphStore using the local filesystem.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".chatflow/graphs".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".chatflow", "graphs")
	}
	return &Store{BasePath: basePath}
}

// Save persists the graph to a JSON file atomically: write to a temp file
// in the same directory, fsync, then rename over the destination.
func (s *Store) Save(ctx context.Context, key string, g domain.Graph) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure graph directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, key+".json")

	data, err := codec.MarshalJSON(g)
	if err != nil {
		return err
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+key+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op if already renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Close before rename (required on Windows).
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows os.Rename fails if dest exists; remove first. The brief
	// delete+rename window beats a partially written file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing graph file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}

	return nil
}

// Load retrieves the graph from its JSON file.
func (s *Store) Load(ctx context.Context, key string) (domain.Graph, error) {
	if key == "" {
		return domain.Graph{}, fmt.Errorf("key cannot be empty")
	}

	data, err := os.ReadFile(filepath.Join(s.BasePath, key+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Graph{}, domain.ErrGraphNotFound
		}
		return domain.Graph{}, fmt.Errorf("failed to read graph file: %w", err)
	}

	return codec.UnmarshalJSON(data)
}

// Delete removes the graph file.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	err := os.Remove(filepath.Join(s.BasePath, key+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete graph file: %w", err)
	}
	return nil
}

// List returns all stored graph keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			keys = append(keys, name[:len(name)-len(".json")])
		}
	}
	return keys, nil
}
