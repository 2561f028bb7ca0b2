package reconciler

import "time"

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithClock overrides the time source used to stamp LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}
