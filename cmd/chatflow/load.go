package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/codec"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// loadDocument reads a graph interchange document, choosing the codec by
// file extension (.yaml/.yml, otherwise JSON).
func loadDocument(path string) (domain.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Graph{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return codec.UnmarshalYAML(data)
	default:
		return codec.UnmarshalJSON(data)
	}
}
