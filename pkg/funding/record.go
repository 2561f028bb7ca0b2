// Package funding defines the canonical funding record entity, its
// identity key scheme, and the sentinel vocabulary shared by extraction
// defaulting and merge back-filling.
package funding

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinel values meaning "field not determined". They are distinct
// from a genuinely empty string and are treated as empty by merges.
const (
	Unknown     = "Unknown"
	Undisclosed = "Undisclosed"
)

// DateFormat is the calendar-date form used for news and update dates.
const DateFormat = "2006-01-02"

// Rounds is the recognized funding round vocabulary.
var Rounds = []string{
	"Pre-Seed",
	"Seed",
	"Series A",
	"Series B",
	"Series C",
	"Series D",
	"Series E",
	"Bridge",
	"Angel",
	Unknown,
}

// Record is the canonical funding event entity. One record describes
// one real-world funding event, progressively enriched as more sources
// report it.
type Record struct {
	Company        string   `json:"company"`
	Website        string   `json:"website,omitempty"`
	Round          string   `json:"funding_round"`
	Amount         string   `json:"amount"`
	Investors      []string `json:"investor_names,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Description    string   `json:"description,omitempty"`
	NewsDate       string   `json:"funding_news_date"` // date the event was reported, not last touch
	SourceLink     string   `json:"source_link,omitempty"`
	SourcePriority int      `json:"source_priority"`
	LastUpdated    string   `json:"last_updated,omitempty"`
}

// Key identifies a real-world funding event. Two records with the same
// key must never coexist as separate entries.
type Key string

// Key returns the identity key: normalized company, normalized round,
// and the news date.
func (r *Record) Key() Key {
	return Key(Normalize(r.Company) + "_" + Normalize(r.Round) + "_" + r.NewsDate)
}

var fold = cases.Fold()

// Normalize produces the identity form of a display string: trimmed
// and case-folded.
func Normalize(s string) string {
	return fold.String(strings.TrimSpace(s))
}

// IsSentinel reports whether a string field value carries no
// information. The same predicate backs extraction defaulting and
// merge back-filling so the two stay consistent.
func IsSentinel(v string) bool {
	switch strings.TrimSpace(v) {
	case "", Unknown, Undisclosed, "N/A":
		return true
	}
	return false
}

// ParseNewsDate parses the record's news date. Zero time and false on
// malformed dates.
func (r *Record) ParseNewsDate() (time.Time, bool) {
	t, err := time.Parse(DateFormat, r.NewsDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var titler = cases.Title(language.English)

// CanonicalRound maps a matched round string onto the recognized
// vocabulary form ("series a" -> "Series A"). Unrecognized input
// title-cases as-is.
func CanonicalRound(s string) string {
	s = titler.String(strings.TrimSpace(s))
	for _, r := range Rounds {
		if strings.EqualFold(s, r) {
			return r
		}
	}
	if s == "" {
		return Unknown
	}
	return s
}

// Slug derives a LinkedIn-style company slug: lower-cased, whitespace
// replaced by hyphens, everything else outside [a-z0-9-] dropped.
func (r *Record) Slug() string {
	var b strings.Builder
	for _, c := range strings.ToLower(strings.TrimSpace(r.Company)) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-':
			b.WriteRune(c)
		case c == ' ' || c == '\t':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
