package reconciler

import (
	"fmt"

	"github.com/fundradar/fundradar/pkg/funding"
)

// Result represents the outcome of a reconciliation pass.
type Result struct {
	// Inserted are records with keys new to the history.
	Inserted []funding.Record

	// Updated are existing records changed by a merge.
	Updated []funding.Record

	// Unchanged counts incoming records that merged to a no-op.
	Unchanged int

	// NextHistory is the history with all insertions and updates
	// applied, the baseline for the next run.
	NextHistory map[funding.Key]funding.Record
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{
		NextHistory: make(map[funding.Key]funding.Record),
	}
}

// HasChanges returns true if the pass inserted or updated anything.
func (r *Result) HasChanges() bool {
	return len(r.Inserted) > 0 || len(r.Updated) > 0
}

// Summary returns a human-readable summary of the pass.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return fmt.Sprintf("No changes (%d unchanged, %d in history)", r.Unchanged, len(r.NextHistory))
	}
	return fmt.Sprintf("%d inserted, %d updated, %d unchanged (%d in history)",
		len(r.Inserted), len(r.Updated), r.Unchanged, len(r.NextHistory))
}
