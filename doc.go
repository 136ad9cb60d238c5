/*
Package chatflow is the graph mutation and validation engine behind the
flow editor. Three surfaces edit the same workflow at once (a visual
canvas, a chat-style planner and plain forms) and every structural change
from any of them funnels through one Store as an atomic, describable patch.

# Concept

A workflow is a directed graph of typed steps (pkg/domain). The Store owns
the committed graph and its undo/redo history; pkg/patch computes each
change copy-on-write, so a rejected patch leaves no trace and a committed
one replaces the graph wholesale. Topology validation (pkg/validate) is a
separate, on-demand pass: it gates "run" and export, never editing.

# Key Properties

  - Atomic patches: apply fully or not at all, including BULK batches.
  - Derived fields: roles and display labels are recomputed, never trusted.
  - Reliable history: bounded, structurally independent snapshots.
  - Planner safety: chat proposals are vetted before they can touch state.

# Usage

	store := chatflow.New("morning digest")

	res := store.Apply(domain.AddNode(domain.Node{
		ID:     "t1",
		Kind:   "trigger.schedule",
		Config: map[string]any{"cron": "0 9 * * *"},
	}))
	if !res.OK {
		// res.Issues explains the rejection; the graph is unchanged.
	}

	report := store.Validate() // before "run" or export
	doc, _ := store.Export()
	_ = doc
*/
package chatflow
