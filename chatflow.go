package chatflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/internal/logging"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/codec"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/history"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/observability"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/patch"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/planner"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/validate"
)

// Version of the chatflow library.
var Version = "0.1.0"

// Observer is notified synchronously with a snapshot after each commit.
type Observer func(domain.Graph)

// Store owns the canonical graph and its history. All mutation funnels
// through Apply/Undo/Redo/Reset; external actors never touch the node and
// edge collections directly. Safe for concurrent use, though edits are
// serialized: there is exactly one writer at a time by construction.
type Store struct {
	mu        sync.Mutex
	graph     domain.Graph
	hist      *history.History
	observers map[int]Observer
	nextObs   int

	logger    *slog.Logger
	plan      planner.Planner
	metrics   *observability.Metrics
	histLimit int

	// Planner-facing summary: eventually consistent, recomputed off the
	// commit path. pending is a single slot, so rapid successive commits
	// coalesce into one recomputation of the latest graph.
	summaryMu sync.RWMutex
	summary   string
	pending   chan domain.Graph
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a structured logger for commit and rejection events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithPlanner injects the natural-language collaborator used by Propose.
func WithPlanner(p planner.Planner) Option {
	return func(s *Store) { s.plan = p }
}

// WithHistoryLimit overrides the undo stack bound (default 50).
func WithHistoryLimit(limit int) Option {
	return func(s *Store) { s.histLimit = limit }
}

// WithMetrics attaches a Prometheus instrument set.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a store holding an empty graph with the given name.
func New(name string, opts ...Option) *Store {
	s := &Store{
		graph:     domain.NewGraph(name),
		observers: make(map[int]Observer),
		logger:    logging.NewNop(),
		pending:   make(chan domain.Graph, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hist = history.New(s.graph, s.histLimit)
	s.summary = planner.Summarize(s.graph)
	go s.summaryLoop()
	return s
}

// Close stops the background summary worker. The store remains usable for
// synchronous calls afterwards; only summary recomputation halts.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Apply runs the patch against the committed graph. On success the result
// graph becomes canonical, one history entry is pushed and observers are
// notified; on failure nothing changes and the issues explain why.
func (s *Store) Apply(p domain.Patch) domain.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := patch.Apply(p, s.graph)
	if !res.OK {
		s.logger.Warn("patch rejected", "op", p.Op, "issues", len(res.Issues))
		if s.metrics != nil {
			s.metrics.PatchRejected()
		}
		res.Graph = s.graph.Clone()
		return res
	}

	s.graph = res.Graph
	s.hist.Push(s.graph)
	s.logger.Debug("patch committed", "op", p.Op, "nodes", len(s.graph.Nodes), "edges", len(s.graph.Edges))
	if s.metrics != nil {
		s.metrics.PatchApplied(p.Op)
	}
	s.afterCommit()

	res.Graph = s.graph.Clone()
	return res
}

// Undo steps back one committed snapshot. At the oldest entry it is a
// silent no-op and returns ok=false with the current graph.
func (s *Store) Undo() (domain.Graph, bool) {
	return s.moveHistory("undo", func() (domain.Graph, bool) { return s.hist.Undo() })
}

// Redo steps forward one snapshot, mirroring Undo.
func (s *Store) Redo() (domain.Graph, bool) {
	return s.moveHistory("redo", func() (domain.Graph, bool) { return s.hist.Redo() })
}

func (s *Store) moveHistory(op string, move func() (domain.Graph, bool)) (domain.Graph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := move()
	if !ok {
		return s.graph.Clone(), false
	}
	s.graph = g
	if s.metrics != nil {
		s.metrics.HistoryOp(op)
	}
	s.afterCommit()
	return s.graph.Clone(), true
}

// Validate runs the topology checks against the committed graph.
func (s *Store) Validate() domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validate.Check(s.graph.Nodes, s.graph.Edges)
}

// Graph returns an independent copy of the committed graph.
func (s *Store) Graph() domain.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Clone()
}

// Reset discards the graph and the entire history, starting a fresh
// editing session under the given name.
func (s *Store) Reset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = domain.NewGraph(name)
	s.hist = history.New(s.graph, s.histLimit)
	s.afterCommit()
}

// Load replaces the session content with an imported graph. Like Reset it
// starts history from a fresh baseline: imported documents are not undone
// into the previous session's states.
func (s *Store) Load(g domain.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = g.Clone()
	s.hist = history.New(s.graph, s.histLimit)
	s.afterCommit()
}

// Export serializes the committed graph as an interchange JSON document.
func (s *Store) Export() ([]byte, error) {
	return codec.MarshalJSON(s.Graph())
}

// Import parses an interchange JSON document and loads it.
func (s *Store) Import(data []byte) error {
	g, err := codec.UnmarshalJSON(data)
	if err != nil {
		return err
	}
	s.Load(g)
	return nil
}

// Subscribe registers an observer notified synchronously after every
// commit. The returned function cancels the subscription.
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = obs

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Propose feeds user text to the configured planner and, when it answers
// with a vetted patch, applies it. A nil patch pointer in the result means
// the planner had no confident interpretation; that is not an error.
func (s *Store) Propose(ctx context.Context, text string) (*domain.Patch, domain.Result, error) {
	if s.plan == nil {
		return nil, domain.Result{}, fmt.Errorf("no planner configured")
	}

	g := s.Graph()
	proposal, err := s.plan.Propose(ctx, text, s.Summary(), g.Nodes)
	if err != nil {
		return nil, domain.Result{}, fmt.Errorf("planner failed: %w", err)
	}
	if proposal == nil {
		return nil, domain.Result{OK: true, Graph: g}, nil
	}

	// The guard runs against the node list the planner saw. A stale-but-
	// vetted removal can still fail in Apply, which is equally effect-free.
	if issues := planner.Vet(proposal, g.Nodes); len(issues) > 0 {
		s.logger.Warn("planner proposal refused", "issues", len(issues))
		if s.metrics != nil {
			s.metrics.PatchRejected()
		}
		return proposal, domain.Result{OK: false, Graph: g, Issues: issues}, nil
	}

	return proposal, s.Apply(*proposal), nil
}

// Summary returns the planner-facing text description of the graph. It is
// eventually consistent: right after a commit it may still describe the
// previous graph for a moment.
func (s *Store) Summary() string {
	s.summaryMu.RLock()
	defer s.summaryMu.RUnlock()
	return s.summary
}

// afterCommit notifies observers and queues a summary recompute.
// Callers hold s.mu.
func (s *Store) afterCommit() {
	snapshot := s.graph.Clone()
	for _, obs := range s.observers {
		obs(snapshot)
	}
	if s.metrics != nil {
		s.metrics.Observe(snapshot)
	}
	s.queueSummary(snapshot)
}

// queueSummary replaces whatever graph is waiting in the single slot, so a
// burst of commits costs one recomputation.
func (s *Store) queueSummary(g domain.Graph) {
	for {
		select {
		case s.pending <- g:
			return
		default:
			select {
			case <-s.pending:
			default:
			}
		}
	}
}

func (s *Store) summaryLoop() {
	for {
		select {
		case <-s.done:
			return
		case g := <-s.pending:
			text := planner.Summarize(g)
			s.summaryMu.Lock()
			s.summary = text
			s.summaryMu.Unlock()
		}
	}
}
