package pipeline

import (
	"time"

	"github.com/fundradar/fundradar/internal/sink"
	"github.com/fundradar/fundradar/pkg/extractor"
	"github.com/fundradar/fundradar/pkg/history"
	"github.com/fundradar/fundradar/pkg/reconciler"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFetcher replaces the feed fetcher.
func WithFetcher(f fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithExtractor replaces the extraction strategy pipeline.
func WithExtractor(e *extractor.Pipeline) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithStore replaces the history store.
func WithStore(s history.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithSink replaces the sync sink.
func WithSink(s sink.Sink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// WithReconciler replaces the reconciler.
func WithReconciler(r *reconciler.Reconciler) Option {
	return func(p *Pipeline) { p.rec = r }
}

// WithSleep replaces the delay function used between remote calls.
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Pipeline) { p.sleep = sleep }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}
