package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/fundradar/fundradar/pkg/differ"
	"github.com/fundradar/fundradar/pkg/errors"
	"github.com/fundradar/fundradar/pkg/logging"
	"github.com/fundradar/fundradar/pkg/sheet"
)

// CSVSink is a file-backed Sink for local runs and tests. The first
// row is always the header.
type CSVSink struct {
	path string
}

// NewCSVSink creates a sink backed by the given CSV file path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Snapshot reads the current data rows. A missing file is an empty
// sink.
func (s *CSVSink) Snapshot(_ context.Context) ([]sheet.Row, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &errors.SinkError{Op: "snapshot", Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate short rows
	all, err := reader.ReadAll()
	if err != nil {
		return nil, &errors.SinkError{Op: "snapshot", Err: err}
	}

	if len(all) == 0 {
		return nil, nil
	}

	rows := make([]sheet.Row, 0, len(all)-1)
	for _, raw := range all[1:] { // skip header
		rows = append(rows, sheet.Row(raw))
	}
	return rows, nil
}

// Apply rewrites the file with the changeset's updates applied in
// place and its appends at the end.
func (s *CSVSink) Apply(ctx context.Context, cs *differ.Changeset) error {
	rows, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	for _, update := range cs.Updates {
		if update.RowIndex < 0 || update.RowIndex >= len(rows) {
			return &errors.SinkError{
				Op:  "update",
				Err: errors.New("row locator out of range"),
			}
		}
		rows[update.RowIndex] = update.Row
	}
	rows = append(rows, cs.Appends...)

	if err := s.write(rows); err != nil {
		return &errors.SinkError{Op: "append", Err: err}
	}

	logging.FromContext(ctx).Info().
		Int("appended", len(cs.Appends)).
		Int("updated", len(cs.Updates)).
		Str("path", s.path).
		Msg("Sink updated")
	return nil
}

// write replaces the file contents through a temp file rename.
func (s *CSVSink) write(rows []sheet.Row) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(sheet.Header); err != nil {
		tmp.Close()
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
