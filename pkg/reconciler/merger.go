package reconciler

import (
	"slices"

	"github.com/fundradar/fundradar/pkg/funding"
)

// Merge combines two reports of the same funding event. The result
// starts from the winning record; only its empty or sentinel fields
// are back-filled from the losing one. A populated, non-sentinel field
// on the winner is never discarded.
func Merge(winner, loser funding.Record) funding.Record {
	merged := winner
	merged.Investors = slices.Clone(winner.Investors)

	merged.Company = fill(merged.Company, loser.Company)
	merged.Website = fill(merged.Website, loser.Website)
	merged.Round = fill(merged.Round, loser.Round)
	merged.Amount = fill(merged.Amount, loser.Amount)
	merged.Industry = fill(merged.Industry, loser.Industry)
	merged.Description = fill(merged.Description, loser.Description)
	merged.SourceLink = fill(merged.SourceLink, loser.SourceLink)
	merged.NewsDate = fill(merged.NewsDate, loser.NewsDate)
	if len(merged.Investors) == 0 {
		merged.Investors = slices.Clone(loser.Investors)
	}

	return merged
}

// fill backs an empty or sentinel value with the fallback.
func fill(value, fallback string) string {
	if funding.IsSentinel(value) && !funding.IsSentinel(fallback) {
		return fallback
	}
	return value
}

// Equal reports whether two records carry the same data. LastUpdated
// is ignored: it records when the reconciler last touched the entry,
// not what the entry says.
func Equal(a, b funding.Record) bool {
	return a.Company == b.Company &&
		a.Website == b.Website &&
		a.Round == b.Round &&
		a.Amount == b.Amount &&
		a.Industry == b.Industry &&
		a.Description == b.Description &&
		a.NewsDate == b.NewsDate &&
		a.SourceLink == b.SourceLink &&
		a.SourcePriority == b.SourcePriority &&
		slices.Equal(a.Investors, b.Investors)
}
