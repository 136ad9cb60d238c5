package domain

import "fmt"

// Issue codes emitted by the patch applier and the validator.
const (
	CodeMissingNode    = "missing_node"
	CodeMissingEdge    = "missing_edge"
	CodeDuplicateNode  = "duplicate_node"
	CodeDuplicateEdge  = "duplicate_edge"
	CodeSelfLoop       = "self_loop"
	CodeBadPatch       = "bad_patch"
	CodeNoTrigger      = "no_trigger"
	CodeManyTriggers   = "multiple_triggers"
	CodeNoAction       = "no_reachable_action"
	CodeOrphanedNode   = "orphaned_node"
	CodeBranch         = "branch"
	CodePlannerRefused = "planner_refused"
)

// Issue is one human-readable diagnostic attached to a rejected patch or a
// validation report.
type Issue struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`

	// Ref names the node or edge the issue is about, when there is one.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`

	// OpIndex identifies the failing sub-operation within its innermost
	// BULK patch. -1 for non-bulk failures.
	OpIndex int `json:"op_index" yaml:"op_index"`
}

func (i Issue) String() string {
	if i.Ref != "" {
		return fmt.Sprintf("%s: %s (%s)", i.Code, i.Message, i.Ref)
	}
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// Issuef builds an Issue with a formatted message.
func Issuef(code, ref, format string, args ...any) Issue {
	return Issue{Code: code, Ref: ref, OpIndex: -1, Message: fmt.Sprintf(format, args...)}
}

// Result is the outcome of applying a patch. On success Graph holds the new
// copy; the inputs are never mutated. On failure Issues explains why and
// Graph is the untouched input.
type Result struct {
	OK     bool    `json:"ok"`
	Graph  Graph   `json:"graph"`
	Issues []Issue `json:"issues,omitempty"`
}

// Report is the outcome of a standalone validation pass. Issues block an
// explicit run/export gate; Warnings never block anything.
type Report struct {
	OK       bool    `json:"ok"`
	Issues   []Issue `json:"issues,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}
