// Package sink is the narrow contract with the external row store:
// snapshot in, ordered mutations out. Nothing here interprets funding
// record semantics beyond the positional layout defined by pkg/sheet.
package sink

import (
	"context"

	"github.com/fundradar/fundradar/pkg/differ"
	"github.com/fundradar/fundradar/pkg/sheet"
)

// Sink is the external row store collaborator. Any error it returns is
// fatal for the run.
type Sink interface {
	// Snapshot reads the current data rows, header excluded. Row
	// locators in a changeset refer to positions in this slice.
	Snapshot(ctx context.Context) ([]sheet.Row, error)

	// Apply performs the changeset's appends and updates.
	Apply(ctx context.Context, cs *differ.Changeset) error
}
