// Package differ translates a reconciliation result into the ordered
// add/update operation set expected by the external sink. It is the
// only component that knows the sink's positional addressing; it never
// changes funding record semantics.
package differ

import (
	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/reconciler"
	"github.com/fundradar/fundradar/pkg/sheet"
)

// Differ plans sink mutations from a snapshot of the sink's current
// rows. The plan is computed from that single snapshot and applied
// without re-checking for concurrent external edits.
type Differ struct{}

// New creates a Differ.
func New() *Differ {
	return &Differ{}
}

// Plan produces the changeset for a reconciliation result against the
// sink snapshot. Inserted records append; updated records locate their
// row by identity key. A row whose round column is sentinel also
// matches on company and date, so an entry that later learned its round
// updates the row it came from instead of duplicating it. An updated
// record with no matching row appends, healing snapshot drift.
func (d *Differ) Plan(result *reconciler.Result, snapshot []sheet.Row) *Changeset {
	index := newRowIndex(snapshot)

	cs := &Changeset{}
	for _, record := range result.Inserted {
		if i, exists := index.locate(record); exists {
			// Already present in the sink (e.g. history was reset);
			// update the row in place instead of duplicating it.
			cs.Updates = append(cs.Updates, RowUpdate{
				RowIndex: i,
				Key:      record.Key(),
				Row:      sheet.FromRecord(record),
			})
			continue
		}
		cs.Appends = append(cs.Appends, sheet.FromRecord(record))
	}

	for _, record := range result.Updated {
		i, exists := index.locate(record)
		if !exists {
			cs.Appends = append(cs.Appends, sheet.FromRecord(record))
			continue
		}
		cs.Updates = append(cs.Updates, RowUpdate{
			RowIndex: i,
			Key:      record.Key(),
			Row:      sheet.FromRecord(record),
		})
	}

	return cs
}

// rowIndex resolves records to snapshot positions, by exact key and by
// the round-less event identity for rows whose round column is
// sentinel. First occurrence wins on duplicates.
type rowIndex struct {
	byKey   map[funding.Key]int
	byEvent map[string]int
}

func newRowIndex(snapshot []sheet.Row) *rowIndex {
	index := &rowIndex{
		byKey:   make(map[funding.Key]int, len(snapshot)),
		byEvent: make(map[string]int),
	}
	for i, row := range snapshot {
		key := row.Key()
		if _, dup := index.byKey[key]; !dup {
			index.byKey[key] = i
		}
		if funding.IsSentinel(row.Round()) {
			event := row.EventKey()
			if _, dup := index.byEvent[event]; !dup {
				index.byEvent[event] = i
			}
		}
	}
	return index
}

func (x *rowIndex) locate(record funding.Record) (int, bool) {
	if i, ok := x.byKey[record.Key()]; ok {
		return i, true
	}
	if i, ok := x.byEvent[funding.Normalize(record.Company)+"_"+record.NewsDate]; ok {
		return i, true
	}
	return 0, false
}
