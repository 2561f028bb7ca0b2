// Package reconciler merges batches of candidate funding records into
// the rolling history so that one real-world funding event, reported
// by several sources with varying completeness and trustworthiness,
// yields exactly one progressively enriched record.
package reconciler

import (
	"time"

	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/logging"
)

// Reconciler applies incoming candidate records to an existing keyed
// history.
type Reconciler struct {
	now func() time.Time
}

// New creates a Reconciler with options.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile processes each incoming record against the existing
// history. Per record: absent key inserts, higher source priority
// replaces with back-fill, equal priority fills the existing record's
// gaps, lower priority is discarded. The returned NextHistory is the
// baseline for the next run.
func (r *Reconciler) Reconcile(existing map[funding.Key]funding.Record, incoming []funding.Record) *Result {
	result := NewResult()
	result.NextHistory = make(map[funding.Key]funding.Record, len(existing)+len(incoming))
	events := make(map[string]funding.Key, len(existing))
	for key, record := range existing {
		result.NextHistory[key] = record
		events[eventKey(record)] = key
	}

	today := r.now().Format(funding.DateFormat)

	for _, candidate := range incoming {
		key, current, exists := match(result.NextHistory, events, candidate)

		if !exists {
			candidate.LastUpdated = today
			result.NextHistory[key] = candidate
			events[eventKey(candidate)] = key
			result.Inserted = append(result.Inserted, candidate)
			continue
		}

		var merged funding.Record
		switch {
		case candidate.SourcePriority > current.SourcePriority:
			// The more trusted report wins outright; the old record
			// only fills its gaps.
			merged = Merge(candidate, current)
		case candidate.SourcePriority == current.SourcePriority:
			merged = Merge(current, candidate)
		default:
			logging.Debug().
				Str("key", string(key)).
				Int("incoming_priority", candidate.SourcePriority).
				Int("existing_priority", current.SourcePriority).
				Msg("Discarding lower priority report")
			continue
		}

		if Equal(merged, current) {
			result.Unchanged++
			continue
		}

		merged.LastUpdated = today
		// Merging can name a round the stored entry lacked, moving the
		// entry to its real key.
		if newKey := merged.Key(); newKey != key {
			delete(result.NextHistory, key)
			key = newKey
		}
		result.NextHistory[key] = merged
		events[eventKey(merged)] = key
		result.Updated = append(result.Updated, merged)
	}

	return result
}

// match finds the stored entry a candidate describes. An exact key hit
// wins; failing that, when the candidate's round or the stored
// counterpart's round is sentinel, the candidate matches on company and
// date alone. A report whose round went unrecognized must enrich the
// event it describes, not coexist with it.
func match(stored map[funding.Key]funding.Record, events map[string]funding.Key, candidate funding.Record) (funding.Key, funding.Record, bool) {
	key := candidate.Key()
	if current, ok := stored[key]; ok {
		return key, current, true
	}

	if altKey, ok := events[eventKey(candidate)]; ok {
		current := stored[altKey]
		if funding.IsSentinel(candidate.Round) || funding.IsSentinel(current.Round) {
			return altKey, current, true
		}
	}

	return key, funding.Record{}, false
}

// eventKey identifies a funding event without its round, for matching
// reports that could not name one.
func eventKey(r funding.Record) string {
	return funding.Normalize(r.Company) + "_" + r.NewsDate
}
