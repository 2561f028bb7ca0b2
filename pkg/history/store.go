// Package history holds the rolling window of previously reconciled
// funding records. The backing store is a single JSON document; a
// missing or corrupt file loads as an empty history, never an error.
package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/logging"
)

// DefaultRetentionDays is the default retention window.
const DefaultRetentionDays = 30

// Store persists the reconciled record set between runs.
type Store interface {
	// Load reads the stored records. Absence or corruption yields an
	// empty set and a nil error.
	Load(ctx context.Context) ([]funding.Record, error)

	// Save atomically replaces the stored records.
	Save(ctx context.Context, records []funding.Record) error
}

// document is the on-disk schema.
type document struct {
	Records     []funding.Record `json:"records"`
	LastCleanup time.Time        `json:"last_cleanup"`
}

// FileStore is the JSON file implementation of Store.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the history file. A missing file is an empty history; a
// corrupt one is logged and treated the same so a bad write never
// wedges the pipeline.
func (s *FileStore) Load(ctx context.Context) ([]funding.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("path", s.path).
				Msg("History file unreadable, starting empty")
		}
		return nil, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("path", s.path).
			Msg("History file corrupt, starting empty")
		return nil, nil
	}

	return doc.Records, nil
}

// Save writes the document to a temp file in the same directory and
// renames it into place, so a crash mid-write leaves either the old or
// the new version.
func (s *FileStore) Save(ctx context.Context, records []funding.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	doc := document{
		Records:     records,
		LastCleanup: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Int("records", len(records)).
		Str("path", s.path).
		Msg("History saved")
	return nil
}

// Prune removes records whose news date is more than retentionDays
// before asOf. The boundary is inclusive: a record exactly
// retentionDays old is retained. Records with unparseable dates are
// kept; dropping them would re-insert their events on the next run.
func Prune(records []funding.Record, asOf time.Time, retentionDays int) []funding.Record {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	// Compare at calendar-date granularity, matching the news date form.
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := day.AddDate(0, 0, -retentionDays)

	kept := make([]funding.Record, 0, len(records))
	for _, record := range records {
		newsDate, ok := record.ParseNewsDate()
		if ok && newsDate.Before(cutoff) {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}

// Index keys a record list for reconciliation. Later entries win on a
// key collision, which cannot happen on a store written by the
// reconciler.
func Index(records []funding.Record) map[funding.Key]funding.Record {
	index := make(map[funding.Key]funding.Record, len(records))
	for _, record := range records {
		index[record.Key()] = record
	}
	return index
}
