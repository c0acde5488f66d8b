package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/truman/internal/logging"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/aretw0/truman/pkg/ports"
)

// Runner drives a controller in real time.
type Runner struct {
	Controller ports.Controller

	// Period is the tick period. Zero uses DefaultPeriod.
	Period time.Duration

	// Logger is used for lifecycle logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	StopWhenDone bool
	TimeLimit    time.Duration
	Signals      bool

	now   func() time.Time
	ticks <-chan time.Time
}

// NewRunner creates a Runner for ctrl.
func NewRunner(ctrl ports.Controller, opts ...Option) *Runner {
	r := &Runner{
		Controller: ctrl,
		Period:     DefaultPeriod,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.Period <= 0 {
		r.Period = DefaultPeriod
	}
	return r
}

// Result summarizes a finished run.
type Result struct {
	Ticks   int
	Elapsed time.Duration
	State   domain.State
}

// Run starts a run and ticks until a stop condition holds. Cancellation is
// a normal way to stop and is not reported as an error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Signals {
		signals := NewSignalManager(ctx)
		defer signals.Stop()
		ctx = signals.Context()
	}

	ticks := r.ticks
	if ticks == nil {
		ticker := time.NewTicker(r.Period)
		defer ticker.Stop()
		ticks = ticker.C
	}

	r.Controller.OnStart()
	start := r.now()
	res := Result{}
	r.Logger.Info("run started", "period", r.Period, "time_limit", r.TimeLimit)

	tick := func() bool {
		settled := res.Ticks > 0 && res.State.Terminal()
		res.Elapsed = r.now().Sub(start)
		r.Controller.OnTick(res.Elapsed)
		res.Ticks++
		res.State = r.Controller.State()
		if r.StopWhenDone && settled {
			r.Logger.Info("run finished", "ticks", res.Ticks, "elapsed", res.Elapsed)
			return false
		}
		if r.TimeLimit > 0 && res.Elapsed >= r.TimeLimit {
			r.Logger.Info("time limit reached", "ticks", res.Ticks, "state", res.State)
			return false
		}
		return true
	}

	if !tick() {
		return res, nil
	}
	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("run stopped", "reason", ctx.Err(), "ticks", res.Ticks, "state", res.State)
			return res, nil
		case _, ok := <-ticks:
			if !ok {
				return res, nil
			}
			if !tick() {
				return res, nil
			}
		}
	}
}
