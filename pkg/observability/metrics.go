// Package observability exposes Prometheus metrics for the graph store.
// Metrics attach to a store as a plain observer plus a rejection hook, so
// the engine itself stays metrics-free.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// Metrics holds the instrument set for one store.
type Metrics struct {
	patchesApplied  *prometheus.CounterVec
	patchesRejected prometheus.Counter
	historyOps      *prometheus.CounterVec
	nodes           prometheus.Gauge
	edges           prometheus.Gauge
}

// New creates the metric set and registers it with the given registerer.
// Pass prometheus.DefaultRegisterer for the usual global registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		patchesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatflow",
			Name:      "patches_applied_total",
			Help:      "Committed patches by operation.",
		}, []string{"op"}),
		patchesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chatflow",
			Name:      "patches_rejected_total",
			Help:      "Patches rejected by the applier or the planner guard.",
		}),
		historyOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatflow",
			Name:      "history_ops_total",
			Help:      "Undo/redo operations that moved the history pointer.",
		}, []string{"op"}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chatflow",
			Name:      "graph_nodes",
			Help:      "Nodes in the committed graph.",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chatflow",
			Name:      "graph_edges",
			Help:      "Edges in the committed graph.",
		}),
	}
	reg.MustRegister(m.patchesApplied, m.patchesRejected, m.historyOps, m.nodes, m.edges)
	return m
}

// Observe records a committed graph. Wire it up via store.Subscribe.
func (m *Metrics) Observe(g domain.Graph) {
	m.nodes.Set(float64(len(g.Nodes)))
	m.edges.Set(float64(len(g.Edges)))
}

// PatchApplied counts a committed patch.
func (m *Metrics) PatchApplied(op domain.Op) {
	m.patchesApplied.WithLabelValues(string(op)).Inc()
}

// PatchRejected counts a rejected patch.
func (m *Metrics) PatchRejected() {
	m.patchesRejected.Inc()
}

// HistoryOp counts an effective undo or redo.
func (m *Metrics) HistoryOp(op string) {
	m.historyOps.WithLabelValues(op).Inc()
}
