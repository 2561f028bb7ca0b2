package differ

import (
	"fmt"

	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/sheet"
)

// RowUpdate replaces one existing sink row, located by its index in
// the snapshot the plan was computed from.
type RowUpdate struct {
	RowIndex int // position within the snapshot, 0-based
	Key      funding.Key
	Row      sheet.Row
}

// Changeset is the ordered sink mutation plan: appends first-seen
// events, updates rows for enriched ones.
type Changeset struct {
	Appends []sheet.Row
	Updates []RowUpdate
}

// HasChanges returns true if the changeset contains any operations.
func (c *Changeset) HasChanges() bool {
	return len(c.Appends) > 0 || len(c.Updates) > 0
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if !c.HasChanges() {
		return "No sink changes"
	}
	return fmt.Sprintf("Sink changes: %d appended, %d updated", len(c.Appends), len(c.Updates))
}
