package sink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundradar/fundradar/pkg/differ"
	"github.com/fundradar/fundradar/pkg/errors"
	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/sheet"
)

func sinkRecord(company, amount string) funding.Record {
	return funding.Record{
		Company:  company,
		Round:    "Seed",
		Amount:   amount,
		NewsDate: "2024-01-05",
	}
}

func TestCSVSinkEmptySnapshot(t *testing.T) {
	s := NewCSVSink(filepath.Join(t.TempDir(), "sink.csv"))
	rows, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVSinkApplyAppendsAndUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewCSVSink(filepath.Join(t.TempDir(), "sink.csv"))

	// First batch: two appends.
	first := &differ.Changeset{Appends: []sheet.Row{
		sheet.FromRecord(sinkRecord("Zypp", funding.Undisclosed)),
		sheet.FromRecord(sinkRecord("Acme", "$1M")),
	}}
	require.NoError(t, s.Apply(ctx, first))

	rows, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Zypp", rows[0][sheet.ColCompany])

	// Second batch: enrich Zypp in place, append one more.
	second := &differ.Changeset{
		Updates: []differ.RowUpdate{{
			RowIndex: 0,
			Row:      sheet.FromRecord(sinkRecord("Zypp", "$3M")),
		}},
		Appends: []sheet.Row{sheet.FromRecord(sinkRecord("Finly", "$2M"))},
	}
	require.NoError(t, s.Apply(ctx, second))

	rows, err = s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "$3M", rows[0][sheet.ColAmount])
	assert.Equal(t, "Acme", rows[1][sheet.ColCompany])
	assert.Equal(t, "Finly", rows[2][sheet.ColCompany])
}

func TestCSVSinkRejectsBadLocator(t *testing.T) {
	s := NewCSVSink(filepath.Join(t.TempDir(), "sink.csv"))

	cs := &differ.Changeset{Updates: []differ.RowUpdate{{
		RowIndex: 7,
		Row:      sheet.FromRecord(sinkRecord("Zypp", "$3M")),
	}}}
	err := s.Apply(context.Background(), cs)
	require.Error(t, err)

	var sinkErr *errors.SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "update", sinkErr.Op)
}
