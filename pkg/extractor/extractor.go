// Package extractor converts one article's text into a candidate
// funding record using an ordered list of extraction strategies.
// Remote generative strategies run first where configured; the
// deterministic heuristic strategy is the terminal fallback. The first
// strategy that produces a structurally valid record wins.
package extractor

import (
	"context"
	"strings"
	"time"

	"github.com/fundradar/fundradar/pkg/errors"
	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/logging"
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

// Strategy is one extraction capability. A nil record with a non-nil
// error means the strategy failed and the pipeline falls through.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// TryExtract converts an article into a candidate record.
	TryExtract(ctx context.Context, article funding.Article) (*funding.Record, error)
}

// Pipeline tries strategies in a fixed priority order.
type Pipeline struct {
	strategies []Strategy
}

// NewPipeline creates a pipeline over the given strategies, tried in
// argument order.
func NewPipeline(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Remote reports whether any configured strategy makes network calls.
// The orchestrating loop uses this to decide if an inter-call delay is
// needed.
func (p *Pipeline) Remote() bool {
	for _, s := range p.strategies {
		if _, ok := s.(remote); ok {
			return true
		}
	}
	return false
}

// remote is implemented by strategies that call out over the network.
type remote interface {
	Remote() bool
}

// Extract runs strategies in order and returns the first structurally
// valid record. Each failure is logged and the next strategy is tried;
// errors.ErrExhausted when all fail.
func (p *Pipeline) Extract(ctx context.Context, article funding.Article) (*funding.Record, error) {
	for _, strategy := range p.strategies {
		sctx := logging.WithStrategy(ctx, strategy.Name())
		logger := logging.FromContext(sctx)

		record, err := strategy.TryExtract(sctx, article)
		if err == nil && record != nil {
			if verr := Validate(record); verr != nil {
				logger.Debug().
					Str("article", article.Link).
					Err(verr).
					Msg("Extracted record failed validation")
				continue
			}
			applyDefaults(record, article)
			return record, nil
		}

		logger.Warn().
			Str("article", article.Link).
			Err(err).
			Msg("Extraction strategy failed")
	}

	return nil, &errors.ExtractionError{
		Strategy: "pipeline",
		Article:  article.Link,
		Err:      errors.ErrExhausted,
	}
}

// Validate checks structural validity of an extracted record. A record
// whose company is missing, sentinel, or shorter than 2 characters is
// rejected so the pipeline falls through.
func Validate(record *funding.Record) error {
	company := strings.TrimSpace(record.Company)
	if funding.IsSentinel(company) {
		return &errors.ValidationError{
			Field:   "company",
			Value:   record.Company,
			Message: "missing or sentinel",
		}
	}
	if len(company) < 2 {
		return &errors.ValidationError{
			Field:   "company",
			Value:   record.Company,
			Message: "shorter than 2 characters",
		}
	}
	return nil
}

// applyDefaults fills missing optional fields with sentinels and
// stamps provenance from the article. Shares the sentinel predicate
// with the merge layer.
func applyDefaults(record *funding.Record, article funding.Article) {
	record.Company = strings.TrimSpace(record.Company)
	if funding.IsSentinel(record.Round) {
		record.Round = funding.Unknown
	}
	if funding.IsSentinel(record.Amount) {
		record.Amount = funding.Undisclosed
	}
	if funding.IsSentinel(record.Industry) {
		record.Industry = funding.Unknown
	}
	if record.NewsDate == "" {
		record.NewsDate = article.PublishedDate(nowFunc())
	}
	if record.SourceLink == "" {
		record.SourceLink = article.Link
	}
	record.SourcePriority = article.SourcePriority
}
