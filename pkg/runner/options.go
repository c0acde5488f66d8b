package runner

import (
	"log/slog"
	"time"
)

// DefaultPeriod is the tick period used when none is configured.
const DefaultPeriod = 20 * time.Millisecond

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithPeriod sets the tick period.
func WithPeriod(d time.Duration) Option {
	return func(r *Runner) {
		r.Period = d
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithStopWhenDone makes Run return once the controller has spent one tick
// in Done, so the stop issued in Done reaches the actuators.
func WithStopWhenDone(stop bool) Option {
	return func(r *Runner) {
		r.StopWhenDone = stop
	}
}

// WithTimeLimit bounds the run. Zero means no limit.
func WithTimeLimit(d time.Duration) Option {
	return func(r *Runner) {
		r.TimeLimit = d
	}
}

// WithSignals makes Run also stop on SIGINT or SIGTERM.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.Signals = enabled
	}
}

// WithClock replaces the wall clock and the ticker, for tests and
// simulations. ticks drives OnTick; now measures elapsed time.
func WithClock(now func() time.Time, ticks <-chan time.Time) Option {
	return func(r *Runner) {
		r.now = now
		r.ticks = ticks
	}
}
