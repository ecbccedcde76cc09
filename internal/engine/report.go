package engine

import "time"

// Status is the overall outcome of a migration run.
type Status string

const (
	// StatusCompleted means every page of every node applied cleanly.
	StatusCompleted Status = "completed"
	// StatusCompletedWithErrors means some units failed but the run walked
	// every node; failures are listed per node.
	StatusCompletedWithErrors Status = "completed_with_errors"
	// StatusIncomplete means a connection-level failure aborted the run.
	StatusIncomplete Status = "incomplete"
	// StatusSkipped means the confirmation token was absent and nothing ran.
	StatusSkipped Status = "skipped"
)

// PageFailure records one failed page; the run continued past it.
type PageFailure struct {
	Page int
	Rows int
	Err  string
}

// NodeResult is the per-node outcome: rows applied, pages written and
// whatever went wrong.
type NodeResult struct {
	Node     string
	Table    string
	Mode     string // "merge" or "insert"
	Rows     int64
	Pages    int
	Failures []PageFailure
	Err      string // node-level failure (query build or extraction)

	aborted bool // connection-level failure, fatal to the run
}

// Report is the full outcome of one migration run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     Status
	Nodes      []NodeResult
}

// TotalRows sums the applied row counts over all nodes.
func (r *Report) TotalRows() int64 {
	var total int64
	for _, n := range r.Nodes {
		total += n.Rows
	}
	return total
}

// HasFailures reports whether any node recorded a page or node failure.
func (r *Report) HasFailures() bool {
	for _, n := range r.Nodes {
		if n.Err != "" || len(n.Failures) > 0 {
			return true
		}
	}
	return false
}
