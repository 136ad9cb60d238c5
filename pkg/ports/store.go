package ports

import (
	"context"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// GraphStore defines the interface for persisting graph documents.
// Documents are keyed by an opaque name chosen by the host (one editing
// session owns one document).
type GraphStore interface {
	// Save persists the graph under the given key.
	Save(ctx context.Context, key string, g domain.Graph) error

	// Load retrieves the graph stored under the key.
	// Returns domain.ErrGraphNotFound if no such document exists.
	Load(ctx context.Context, key string) (domain.Graph, error)

	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all stored documents.
	List(ctx context.Context) ([]string, error)
}
