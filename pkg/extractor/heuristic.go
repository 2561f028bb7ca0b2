package extractor

import (
	"context"
	"regexp"
	"strings"

	"github.com/fundradar/fundradar/pkg/funding"
)

// companyPatterns anchor on a verb of announcement, a round mention,
// or a currency amount following a capitalized phrase. Tried in order;
// first match wins.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.'’\- ]{1,48}?)\s+(?:raises|secures|announces|closes|bags)\b`),
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.'’\- ]{1,48}?)(?:'s|’s)?\s+Series\s+[A-Ea-e]\b`),
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.'’\- ]{1,48}?)\s+(?:gets|lands|nets|grabs)\s+(?:\$|₹|Rs)`),
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.'’\- ]{1,48}?)\s+(?:\$|₹|€|£|Rs\.?\s?|INR\s?|USD\s?)\s?\d`),
}

// amountPattern matches "$3M", "$1.2 billion", "Rs 40 crore", "₹25 cr"
// and similar forms. The last match in the text is taken as the most
// specific figure.
var amountPattern = regexp.MustCompile(`(?i)(?:\$|₹|Rs\.?\s?|INR\s?|USD\s?)\s?\d+(?:[.,]\d+)?\s?(?:million|billion|thousand|crore|lakh|mn|bn|[MBK]\b|cr\b)?`)

// roundPattern matches the recognized round vocabulary.
var roundPattern = regexp.MustCompile(`(?i)\b(pre-seed|seed|series\s+[a-e]|angel|bridge)\b`)

// investorPattern captures the capitalized name list that follows a
// trigger phrase, up to sentence punctuation.
var investorPattern = regexp.MustCompile(`(?i:led by|backed by|investors included|participation from)\s+([A-Z][^.;!?\n]{2,150})`)

// industryCategories maps category names to keyword lists, checked in
// order. First category with a keyword hit wins.
var industryCategories = []struct {
	name     string
	keywords []string
}{
	{"Fintech", []string{"fintech", "payments", "lending", "banking", "insurance", "insurtech", "wealth"}},
	{"Healthtech", []string{"healthtech", "health", "medical", "pharma", "biotech", "wellness", "diagnostics"}},
	{"Edtech", []string{"edtech", "education", "learning", "upskilling"}},
	{"E-commerce", []string{"e-commerce", "ecommerce", "d2c", "retail", "marketplace"}},
	{"Mobility", []string{"mobility", "ev ", "electric vehicle", "logistics", "delivery", "transport"}},
	{"AI", []string{" ai ", "artificial intelligence", "machine learning", "genai", "llm"}},
	{"SaaS", []string{"saas", "software-as-a-service", "b2b software", "enterprise software"}},
	{"Agritech", []string{"agritech", "agriculture", "farming"}},
	{"Foodtech", []string{"foodtech", "food", "restaurant", "cloud kitchen"}},
	{"Gaming", []string{"gaming", "esports", "game studio"}},
	{"Climate", []string{"climate", "clean energy", "solar", "sustainability"}},
}

// maxInvestors caps the investor list length.
const maxInvestors = 5

// HeuristicStrategy is the deterministic pattern-rule extractor. It
// derives each field independently from raw text and never fails, so
// it terminates the strategy list.
type HeuristicStrategy struct{}

// NewHeuristicStrategy creates the deterministic fallback strategy.
func NewHeuristicStrategy() *HeuristicStrategy {
	return &HeuristicStrategy{}
}

// Name identifies the strategy in logs.
func (s *HeuristicStrategy) Name() string { return "heuristic" }

// TryExtract derives a candidate record from the article title and
// description with pattern rules.
func (s *HeuristicStrategy) TryExtract(_ context.Context, article funding.Article) (*funding.Record, error) {
	text := article.Title + ". " + article.Description

	record := &funding.Record{
		Company:     s.company(article.Title, text),
		Amount:      s.amount(text),
		Round:       s.round(text),
		Investors:   s.investors(text),
		Industry:    s.industry(text),
		Description: s.summary(article),
	}
	return record, nil
}

// company returns the first company pattern match, falling back to the
// first 50 characters of the title.
func (s *HeuristicStrategy) company(title, text string) string {
	for _, pattern := range companyPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	fallback := []rune(strings.TrimSpace(title))
	if len(fallback) > 50 {
		fallback = fallback[:50]
	}
	return strings.TrimSpace(string(fallback))
}

// amount returns the last currency match in the text, the most
// specific figure in announcement prose.
func (s *HeuristicStrategy) amount(text string) string {
	matches := amountPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return funding.Undisclosed
	}
	return strings.TrimSpace(matches[len(matches)-1])
}

// round returns the first recognized round keyword, canonicalized.
func (s *HeuristicStrategy) round(text string) string {
	m := roundPattern.FindString(text)
	if m == "" {
		return funding.Unknown
	}
	// Collapse internal whitespace ("series  a" -> "series a").
	m = strings.Join(strings.Fields(m), " ")
	return funding.CanonicalRound(m)
}

// investors splits the captured name list on commas and "and", filters
// to plausible name lengths, deduplicates, and caps the result.
func (s *HeuristicStrategy) investors(text string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, m := range investorPattern.FindAllStringSubmatch(text, -1) {
		captured := m[1]
		// Stop the capture at common trailing clauses.
		if idx := strings.Index(captured, " with "); idx > 0 {
			captured = captured[:idx]
		}

		parts := strings.FieldsFunc(captured, func(r rune) bool { return r == ',' })
		var flattened []string
		for _, part := range parts {
			for _, sub := range strings.Split(part, " and ") {
				flattened = append(flattened, sub)
			}
		}

		for _, name := range flattened {
			name = strings.TrimSpace(name)
			name = strings.TrimSuffix(name, ".")
			if len(name) < 3 || len(name) > 49 {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, name)
			if len(names) == maxInvestors {
				return names
			}
		}
	}

	return names
}

// industry returns the first category whose keyword appears in the
// lower-cased text, defaulting to Technology.
func (s *HeuristicStrategy) industry(text string) string {
	lower := " " + strings.ToLower(text) + " "
	for _, category := range industryCategories {
		for _, kw := range category.keywords {
			if strings.Contains(lower, kw) {
				return category.name
			}
		}
	}
	return "Technology"
}

// summary produces a one-line description from the article snippet.
func (s *HeuristicStrategy) summary(article funding.Article) string {
	desc := strings.TrimSpace(article.Description)
	if desc == "" {
		return article.Title
	}
	if idx := strings.IndexAny(desc, ".!?"); idx > 20 {
		return desc[:idx+1]
	}
	if len(desc) > 160 {
		return desc[:160]
	}
	return desc
}
