package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fundradar/fundradar/pkg/errors"
	"github.com/fundradar/fundradar/pkg/funding"
)

// promptTemplate asks for exactly one JSON object with the eight named
// fields. Responses are still unwrapped defensively since models wrap
// output in prose or code fences.
const promptTemplate = `Extract structured funding data from this startup news article.

Title: %s
Description: %s
Source: %s

Respond with a single JSON object and nothing else, using exactly these keys:
{
  "company": "startup name, or Unknown",
  "website": "company website URL, or empty string",
  "funding_round": "one of Pre-Seed, Seed, Series A, Series B, Series C, Series D, Series E, Bridge, Angel, Unknown",
  "amount": "amount with currency as written in the article, or Undisclosed",
  "investor_names": ["list of investor names, or empty list"],
  "industry": "industry category, or Unknown",
  "description": "one line describing what the company does",
  "funding_date": "YYYY-MM-DD date of the announcement, or empty string"
}`

// payload is the eight-field shape expected from the provider.
type payload struct {
	Company     string       `json:"company"`
	Website     string       `json:"website"`
	Round       string       `json:"funding_round"`
	Amount      string       `json:"amount"`
	Investors   investorList `json:"investor_names"`
	Industry    string       `json:"industry"`
	Description string       `json:"description"`
	FundingDate string       `json:"funding_date"`
}

// investorList tolerates both a JSON array and a comma-joined string;
// providers return either.
type investorList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *investorList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	if funding.IsSentinel(joined) {
		*l = nil
		return nil
	}
	for _, name := range strings.Split(joined, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}

// GeminiStrategy extracts funding fields with a Gemini model via the
// GenAI SDK. Any call, parse, or validation failure is an ordinary
// strategy failure; the pipeline falls through.
type GeminiStrategy struct {
	client *genai.Client
	model  string
}

// NewGeminiStrategy creates a Gemini-backed extraction strategy for
// the given model ID.
func NewGeminiStrategy(ctx context.Context, apiKey, model string) (*GeminiStrategy, error) {
	if apiKey == "" {
		return nil, &errors.ConfigError{
			Component: "gemini",
			Message:   "API key required",
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, &errors.ConfigError{
			Component: "gemini",
			Message:   "failed to create client",
			Err:       err,
		}
	}

	return &GeminiStrategy{client: client, model: model}, nil
}

// Name identifies the strategy in logs.
func (s *GeminiStrategy) Name() string {
	return "gemini:" + s.model
}

// Remote marks this strategy as network-bound for rate-limit pacing.
func (s *GeminiStrategy) Remote() bool { return true }

// TryExtract sends the extraction prompt and parses the first balanced
// JSON object out of the response body.
func (s *GeminiStrategy) TryExtract(ctx context.Context, article funding.Article) (*funding.Record, error) {
	prompt := fmt.Sprintf(promptTemplate, article.Title, article.Description, article.Source)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.1),
	})
	if err != nil {
		return nil, &errors.ExtractionError{
			Strategy: s.Name(),
			Article:  article.Link,
			Err:      classifyCallError(err),
		}
	}

	return s.parse(resp.Text(), article)
}

// classifyCallError maps transport failures onto the error taxonomy so
// callers can test for rate limits and timeouts.
func classifyCallError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &errors.APIError{
			Provider:   "gemini",
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.ErrTimeout
	}
	return err
}

// parse unwraps and validates the provider response body.
func (s *GeminiStrategy) parse(body string, article funding.Article) (*funding.Record, error) {
	raw, ok := firstJSONObject(body)
	if !ok {
		return nil, &errors.ExtractionError{
			Strategy: s.Name(),
			Article:  article.Link,
			Message:  "response contains no JSON object",
		}
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, &errors.ExtractionError{
			Strategy: s.Name(),
			Article:  article.Link,
			Message:  "response JSON not parseable",
			Err:      err,
		}
	}

	record := &funding.Record{
		Company:     strings.TrimSpace(p.Company),
		Website:     strings.TrimSpace(p.Website),
		Round:       funding.CanonicalRound(p.Round),
		Amount:      strings.TrimSpace(p.Amount),
		Investors:   p.Investors,
		Industry:    strings.TrimSpace(p.Industry),
		Description: strings.TrimSpace(p.Description),
		NewsDate:    strings.TrimSpace(p.FundingDate),
	}
	if _, ok := record.ParseNewsDate(); !ok {
		// Malformed or omitted date falls back to the article publish date.
		record.NewsDate = ""
	}
	if err := Validate(record); err != nil {
		return nil, &errors.ExtractionError{
			Strategy: s.Name(),
			Article:  article.Link,
			Message:  "rejected by validation",
			Err:      err,
		}
	}
	return record, nil
}
