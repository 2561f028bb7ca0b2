package funding

import "time"

// Article is one feed item as handed to the classifier and extractor.
// Items missing a title or link are dropped before they get here.
type Article struct {
	Title       string
	Link        string
	Description string
	Published   time.Time

	// Source provenance, carried from the feed configuration.
	Source         string
	SourcePriority int
}

// PublishedDate returns the publish date in calendar-date form,
// falling back to now when the feed omitted it.
func (a *Article) PublishedDate(now time.Time) string {
	if a.Published.IsZero() {
		return now.Format(DateFormat)
	}
	return a.Published.Format(DateFormat)
}
