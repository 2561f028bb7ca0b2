// Package pipeline orchestrates one batch run: classify → extract →
// reconcile against pruned history → persist history → sync the sink.
// Execution is strictly sequential; the only concurrency-adjacent
// behavior is the cooperative delay between remote extraction calls.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/fundradar/fundradar/internal/config"
	"github.com/fundradar/fundradar/internal/feeds"
	"github.com/fundradar/fundradar/internal/sink"
	"github.com/fundradar/fundradar/pkg/classifier"
	"github.com/fundradar/fundradar/pkg/differ"
	"github.com/fundradar/fundradar/pkg/extractor"
	"github.com/fundradar/fundradar/pkg/funding"
	"github.com/fundradar/fundradar/pkg/history"
	"github.com/fundradar/fundradar/pkg/logging"
	"github.com/fundradar/fundradar/pkg/reconciler"
)

// fetcher retrieves articles for one configured feed.
type fetcher interface {
	Fetch(ctx context.Context, feed feeds.Feed) ([]funding.Article, error)
}

// Pipeline wires the batch components together.
type Pipeline struct {
	cfg       *config.Config
	fetcher   fetcher
	extractor *extractor.Pipeline
	store     history.Store
	rec       *reconciler.Reconciler
	sink      sink.Sink
	sleep     func(time.Duration)
	now       func() time.Time
}

// New assembles a pipeline from configuration. Gemini strategies are
// built per configured model when an API key is present; the heuristic
// strategy always terminates the list.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg:   cfg,
		sleep: time.Sleep,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.extractor == nil {
		strategies, err := buildStrategies(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p.extractor = extractor.NewPipeline(strategies...)
	}
	if p.fetcher == nil {
		p.fetcher = feeds.NewFetcher(cfg.RequestTimeout)
	}
	if p.store == nil {
		p.store = history.NewFileStore(cfg.HistoryFile)
	}
	if p.rec == nil {
		p.rec = reconciler.New(reconciler.WithClock(p.now))
	}
	if p.sink == nil {
		p.sink = sink.NewCSVSink(cfg.SinkFile)
	}

	return p, nil
}

// buildStrategies creates the ordered extraction strategy list.
func buildStrategies(ctx context.Context, cfg *config.Config) ([]extractor.Strategy, error) {
	var strategies []extractor.Strategy

	if cfg.GeminiAPIKey != "" {
		for _, model := range cfg.GeminiModels {
			strategy, err := extractor.NewGeminiStrategy(ctx, cfg.GeminiAPIKey, model)
			if err != nil {
				return nil, err
			}
			strategies = append(strategies, strategy)
		}
	} else {
		logging.FromContext(ctx).Info().
			Msg("No Gemini API key configured, using heuristic extraction only")
	}

	strategies = append(strategies, extractor.NewHeuristicStrategy())
	return strategies, nil
}

// Run executes one batch. History is persisted before the sink is
// touched so a sink outage never loses extraction work; a sink error
// then aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*reconciler.Result, error) {
	logger := logging.FromContext(ctx)
	start := p.now()

	candidates := p.collect(ctx)

	stored, err := p.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	pruned := history.Prune(stored, p.now(), p.cfg.RetentionDays)
	if removed := len(stored) - len(pruned); removed > 0 {
		logger.Info().Int("removed", removed).Msg("Pruned records past retention window")
	}

	result := p.rec.Reconcile(history.Index(pruned), candidates)
	logger.Info().
		Int("inserted", len(result.Inserted)).
		Int("updated", len(result.Updated)).
		Int("unchanged", result.Unchanged).
		Msg("Reconciled batch")

	if err := p.store.Save(ctx, sortedRecords(result.NextHistory)); err != nil {
		return nil, err
	}

	if err := p.syncSink(ctx, result); err != nil {
		return result, err
	}

	logger.Info().
		Dur("duration", p.now().Sub(start)).
		Str("summary", result.Summary()).
		Msg("Batch complete")
	return result, nil
}

// collect fetches all feeds and extracts candidate records from the
// funding-related articles. Feed and extraction failures are logged
// and skipped.
func (p *Pipeline) collect(ctx context.Context) []funding.Record {
	var candidates []funding.Record
	delayed := p.extractor.Remote()
	first := true

	for _, feed := range p.cfg.Feeds {
		fctx := logging.WithFeed(ctx, feed.Name)
		flog := logging.FromContext(fctx)

		articles, err := p.fetcher.Fetch(fctx, feed)
		if err != nil {
			// Source-local failure: remaining feeds still run.
			flog.Error().Err(err).Msg("Feed failed")
			continue
		}
		flog.Debug().Int("articles", len(articles)).Msg("Fetched feed")

		for _, article := range articles {
			if !classifier.IsFundingRelated(article.Title, article.Description) {
				continue
			}

			if delayed && !first {
				p.sleep(p.cfg.ExtractDelay)
			}
			first = false

			record, err := p.extract(fctx, article)
			if err != nil {
				flog.Warn().Err(err).Str("article", article.Link).Msg("Article skipped")
				continue
			}
			candidates = append(candidates, *record)
		}
	}

	return candidates
}

// extract runs the strategy pipeline under the per-call timeout.
func (p *Pipeline) extract(ctx context.Context, article funding.Article) (*funding.Record, error) {
	if p.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.RequestTimeout)
		defer cancel()
	}
	return p.extractor.Extract(ctx, article)
}

// syncSink plans and applies sink mutations from a single snapshot.
func (p *Pipeline) syncSink(ctx context.Context, result *reconciler.Result) error {
	if !result.HasChanges() {
		logging.FromContext(ctx).Debug().Msg("No sink changes to apply")
		return nil
	}

	snapshot, err := p.sink.Snapshot(ctx)
	if err != nil {
		return err
	}

	cs := differ.New().Plan(result, snapshot)
	if !cs.HasChanges() {
		return nil
	}
	return p.sink.Apply(ctx, cs)
}

// Prune loads, prunes, and saves history without running a batch.
func (p *Pipeline) Prune(ctx context.Context) (int, error) {
	stored, err := p.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	pruned := history.Prune(stored, p.now(), p.cfg.RetentionDays)
	removed := len(stored) - len(pruned)
	if removed == 0 {
		return 0, nil
	}

	if err := p.store.Save(ctx, pruned); err != nil {
		return 0, err
	}
	return removed, nil
}

// sortedRecords orders history deterministically for stable files.
func sortedRecords(index map[funding.Key]funding.Record) []funding.Record {
	records := make([]funding.Record, 0, len(index))
	for _, record := range index {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].NewsDate != records[j].NewsDate {
			return records[i].NewsDate < records[j].NewsDate
		}
		return records[i].Key() < records[j].Key()
	})
	return records
}
