// Package classifier filters ingested articles to those plausibly
// about a funding event. False negatives are acceptable; false
// positives are filtered later by extraction validation.
package classifier

import "strings"

// keywords is the curated trigger set. Matching is substring-based on
// the lower-cased title plus description.
var keywords = []string{
	"raised",
	"raises",
	"funding",
	"funded",
	"series a",
	"series b",
	"series c",
	"series d",
	"series e",
	"seed round",
	"seed funding",
	"pre-seed",
	"angel round",
	"bridge round",
	"secures",
	"investment",
	"investors",
	"valuation",
	"crore",
	"$",
	"₹",
	"€",
	"£",
}

// IsFundingRelated reports whether the article title and description
// contain any funding trigger keyword. No side effects.
func IsFundingRelated(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
