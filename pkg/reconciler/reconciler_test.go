package reconciler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/history"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
}

func testRecord(company, round, date, amount string, priority int) funding.Record {
	return funding.Record{
		Company:        company,
		Round:          round,
		NewsDate:       date,
		Amount:         amount,
		Industry:       funding.Unknown,
		SourcePriority: priority,
	}
}

func TestReconcileInsertsNewKeys(t *testing.T) {
	r := New(WithClock(fixedClock))

	incoming := []funding.Record{
		testRecord("Zypp", "Seed", "2024-01-05", "$3M", 5),
		testRecord("Acme", "Series A", "2024-01-05", funding.Undisclosed, 5),
	}

	result := r.Reconcile(map[funding.Key]funding.Record{}, incoming)

	assert.Len(t, result.Inserted, 2)
	assert.Empty(t, result.Updated)
	assert.Len(t, result.NextHistory, 2)
}

func TestReconcileKeyUniqueness(t *testing.T) {
	r := New(WithClock(fixedClock))

	// Same event reported three times in one batch with varying casing.
	incoming := []funding.Record{
		testRecord("Zypp", "Seed", "2024-01-05", funding.Undisclosed, 5),
		testRecord("ZYPP", "seed", "2024-01-05", "$3M", 5),
		testRecord(" zypp ", "Seed", "2024-01-05", "$3M", 5),
	}

	result := r.Reconcile(map[funding.Key]funding.Record{}, incoming)

	assert.Len(t, result.NextHistory, 1, "same key must never coexist as separate entries")
	seen := make(map[funding.Key]int)
	for key := range result.NextHistory {
		seen[key]++
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "duplicate key %s", key)
	}
}

func TestReconcileIdempotence(t *testing.T) {
	r := New(WithClock(fixedClock))

	incoming := []funding.Record{
		testRecord("Zypp", "Seed", "2024-01-05", "$3M", 5),
		testRecord("Acme", "Series A", "2024-01-05", funding.Undisclosed, 5),
	}

	first := r.Reconcile(map[funding.Key]funding.Record{}, incoming)
	second := r.Reconcile(first.NextHistory, incoming)

	assert.Empty(t, second.Inserted, "reprocessing identical input must be a no-op")
	assert.Empty(t, second.Updated)
	assert.Equal(t, len(incoming), second.Unchanged)
}

func TestReconcileLowerPriorityDiscarded(t *testing.T) {
	r := New(WithClock(fixedClock))

	existing := history.Index([]funding.Record{
		testRecord("Zypp", "Seed", "2024-01-05", "$3M", 8),
	})

	weaker := testRecord("Zypp", "Seed", "2024-01-05", "$5M", 3)
	result := r.Reconcile(existing, []funding.Record{weaker})

	assert.Empty(t, result.Inserted)
	assert.Empty(t, result.Updated)
	assert.Equal(t, 0, result.Unchanged, "discarded records are not counted")
	assert.Equal(t, "$3M", result.NextHistory[weaker.Key()].Amount)
}

// Zypp scenario: a priority-5 report with round but no amount, then a
// priority-8 report with amount but no recognized round. Both describe
// one event, so the history ends with a single merged record carrying
// the amount from the trusted source and the round from the weaker one.
func TestReconcileZyppScenario(t *testing.T) {
	r := New(WithClock(fixedClock))

	early := testRecord("Zypp", "Seed", "2024-01-05", funding.Undisclosed, 5)
	first := r.Reconcile(map[funding.Key]funding.Record{}, []funding.Record{early})
	require.Len(t, first.Inserted, 1)

	late := testRecord("Zypp", funding.Unknown, "2024-01-05", "$3M", 8)
	second := r.Reconcile(first.NextHistory, []funding.Record{late})

	require.Len(t, second.NextHistory, 1, "unrecognized round must not split the event")
	require.Len(t, second.Updated, 1)
	merged := second.Updated[0]
	assert.Equal(t, "$3M", merged.Amount, "higher priority populated field wins")
	assert.Equal(t, "Seed", merged.Round, "lower priority fills the gap")
	assert.Equal(t, 8, merged.SourcePriority)
	assert.Equal(t, "2024-01-05", merged.LastUpdated)
}

// Reverse order: the round-less report arrives first. The later report
// that names the round merges in and the entry moves to the round's
// key.
func TestReconcileUnknownRoundLearnsRound(t *testing.T) {
	r := New(WithClock(fixedClock))

	early := testRecord("Zypp", funding.Unknown, "2024-01-05", "$3M", 8)
	first := r.Reconcile(map[funding.Key]funding.Record{}, []funding.Record{early})
	require.Len(t, first.Inserted, 1)

	late := testRecord("Zypp", "Seed", "2024-01-05", funding.Undisclosed, 8)
	second := r.Reconcile(first.NextHistory, []funding.Record{late})

	require.Len(t, second.NextHistory, 1)
	require.Len(t, second.Updated, 1)
	merged := second.Updated[0]
	assert.Equal(t, "Seed", merged.Round, "named round fills the sentinel")
	assert.Equal(t, "$3M", merged.Amount, "populated amount survives the weaker report")
	assert.Equal(t, merged.Key(), func() funding.Key {
		for key := range second.NextHistory {
			return key
		}
		return ""
	}(), "entry is stored under its enriched key")
}

// Two recognized rounds for the same company and date are distinct
// events; the sentinel fallback never conflates them.
func TestReconcileDistinctRoundsSameDayStaySeparate(t *testing.T) {
	r := New(WithClock(fixedClock))

	existing := history.Index([]funding.Record{
		testRecord("Acme", "Seed", "2024-01-05", "$1M", 5),
	})

	seriesA := testRecord("Acme", "Series A", "2024-01-05", "$10M", 5)
	result := r.Reconcile(existing, []funding.Record{seriesA})

	assert.Len(t, result.Inserted, 1)
	assert.Len(t, result.NextHistory, 2)
}

func TestReconcileStampsLastUpdatedOnInsert(t *testing.T) {
	r := New(WithClock(fixedClock))

	result := r.Reconcile(map[funding.Key]funding.Record{}, []funding.Record{
		testRecord("Zypp", "Seed", "2024-01-05", "$3M", 5),
	})

	require.Len(t, result.Inserted, 1)
	assert.Equal(t, "2024-01-05", result.Inserted[0].LastUpdated)
	assert.Equal(t, "2024-01-05", result.NextHistory[result.Inserted[0].Key()].LastUpdated)
}

// Two unrelated "Acme" events on different dates and rounds stay
// distinct history entries.
func TestReconcileAcmeScenario(t *testing.T) {
	r := New(WithClock(fixedClock))

	seed := testRecord("Acme", "Seed", "2024-01-05", "$1M", 5)
	seriesA := testRecord("Acme", "Series A", "2024-02-10", "$10M", 5)

	result := r.Reconcile(map[funding.Key]funding.Record{}, []funding.Record{seed, seriesA})

	assert.Len(t, result.Inserted, 2)
	assert.Len(t, result.NextHistory, 2)
}

func TestReconcileEqualPriorityFillsGaps(t *testing.T) {
	r := New(WithClock(fixedClock))

	existing := testRecord("Zypp", "Seed", "2024-01-05", funding.Undisclosed, 5)
	existing.Investors = nil
	base := history.Index([]funding.Record{existing})

	update := testRecord("Zypp", "Seed", "2024-01-05", "$3M", 5)
	update.Investors = []string{"9Unicorns"}
	update.Website = "https://zypp.app"

	result := r.Reconcile(base, []funding.Record{update})

	require.Len(t, result.Updated, 1)
	merged := result.Updated[0]
	assert.Equal(t, "$3M", merged.Amount)
	assert.Equal(t, []string{"9Unicorns"}, merged.Investors)
	assert.Equal(t, "https://zypp.app", merged.Website)
}

func TestReconcileEqualPriorityNeverOverwritesPopulated(t *testing.T) {
	r := New(WithClock(fixedClock))

	existing := testRecord("Zypp", "Seed", "2024-01-05", "$3M", 5)
	base := history.Index([]funding.Record{existing})

	conflicting := testRecord("Zypp", "Seed", "2024-01-05", "$9M", 5)
	result := r.Reconcile(base, []funding.Record{conflicting})

	assert.Equal(t, "$3M", result.NextHistory[existing.Key()].Amount,
		"equal priority merge only fills empty/sentinel fields")
}
