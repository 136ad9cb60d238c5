// Package http exposes the graph store as a JSON API for the canvas and
// form surfaces.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/internal/presentation/graph"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/ports"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/registry"
)

// Engine is the slice of the store this adapter needs.
type Engine interface {
	Apply(p domain.Patch) domain.Result
	Undo() (domain.Graph, bool)
	Redo() (domain.Graph, bool)
	Validate() domain.Report
	Graph() domain.Graph
	Load(g domain.Graph)
	Summary() string
	Export() ([]byte, error)
	Import(data []byte) error
	Propose(ctx context.Context, text string) (*domain.Patch, domain.Result, error)
}

// Server routes HTTP requests to the engine.
type Server struct {
	engine Engine
	store  ports.GraphStore
}

// Option configures the handler.
type Option func(*Server)

// WithStore attaches a document library: named save/load/delete/list of
// graph documents under /graphs, backed by any GraphStore.
func WithStore(store ports.GraphStore) Option {
	return func(s *Server) { s.store = store }
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{engine: engine}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/graph", s.getGraph)
	r.Get("/graph/mermaid", s.getMermaid)
	r.Post("/patches", s.applyPatch)
	r.Post("/undo", s.undo)
	r.Post("/redo", s.redo)
	r.Get("/validate", s.validate)
	r.Get("/lint", s.lint)
	r.Get("/summary", s.getSummary)
	r.Get("/export", s.export)
	r.Post("/import", s.importDoc)
	r.Post("/chat", s.chat)
	r.Handle("/metrics", promhttp.Handler())

	if s.store != nil {
		r.Get("/graphs", s.listGraphs)
		r.Put("/graphs/{name}", s.saveGraph)
		r.Post("/graphs/{name}/load", s.loadGraph)
		r.Delete("/graphs/{name}", s.deleteGraph)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Graph())
}

func (s *Server) getMermaid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(s.engine.Graph()))
}

func (s *Server) applyPatch(w http.ResponseWriter, r *http.Request) {
	var p domain.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid patch body", http.StatusBadRequest)
		slog.Warn("Apply: invalid request body", "error", err)
		return
	}

	res := s.engine.Apply(p)
	status := http.StatusOK
	if !res.OK {
		// Structural rejection: the request was well-formed but the patch
		// cannot apply. 422 keeps it distinct from malformed JSON.
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	g, moved := s.engine.Undo()
	writeJSON(w, http.StatusOK, map[string]any{"moved": moved, "graph": g})
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	g, moved := s.engine.Redo()
	writeJSON(w, http.StatusOK, map[string]any{"moved": moved, "graph": g})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Validate())
}

func (s *Server) lint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"warnings": registry.LintGraph(s.engine.Graph().Nodes),
	})
}

func (s *Server) listGraphs(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, "Listing failed", http.StatusInternalServerError)
		slog.Error("List graphs failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"graphs": keys})
}

func (s *Server) saveGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Save(r.Context(), name, s.engine.Graph()); err != nil {
		http.Error(w, "Save failed", http.StatusInternalServerError)
		slog.Error("Save graph failed", "name", name, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": name})
}

func (s *Server) loadGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := s.store.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrGraphNotFound) {
			http.Error(w, "No such graph", http.StatusNotFound)
			return
		}
		http.Error(w, "Load failed", http.StatusInternalServerError)
		slog.Error("Load graph failed", "name", name, "error", err)
		return
	}
	s.engine.Load(g)
	writeJSON(w, http.StatusOK, s.engine.Graph())
}

func (s *Server) deleteGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		http.Error(w, "Delete failed", http.StatusInternalServerError)
		slog.Error("Delete graph failed", "name", name, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.engine.Summary())
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	data, err := s.engine.Export()
	if err != nil {
		http.Error(w, "Export failed", http.StatusInternalServerError)
		slog.Error("Export failed", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) importDoc(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	if err := s.engine.Import(data); err != nil {
		http.Error(w, "Invalid graph document", http.StatusBadRequest)
		slog.Warn("Import: invalid document", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Graph())
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Patch   *domain.Patch `json:"patch,omitempty"`
	Result  domain.Result `json:"result"`
	Summary string        `json:"summary"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, res, err := s.engine.Propose(r.Context(), req.Text)
	if err != nil {
		http.Error(w, "Planner unavailable", http.StatusBadGateway)
		slog.Error("Chat: planner failed", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Patch:   p,
		Result:  res,
		Summary: s.engine.Summary(),
	})
}
