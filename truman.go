package truman

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/truman/internal/logging"
	"github.com/aretw0/truman/internal/runtime"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/aretw0/truman/pkg/ports"
	"github.com/google/uuid"
)

// Controller is the autonomous state machine bound to a robot.
//
// OnStart and OnTick are meant to be called from a single host goroutine.
// State and Run may be called concurrently from observers.
type Controller struct {
	cfg    domain.Config
	hw     ports.Hardware
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	newID  func() string

	mu  sync.RWMutex
	run *domain.RunContext
}

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger sets a custom structured logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithRunID overrides how run identifiers are generated.
func WithRunID(gen func() string) Option {
	return func(c *Controller) {
		c.newID = gen
	}
}

// New validates cfg and hw and returns a controller positioned at Begin.
// The guard servo is moved to its neutral position.
func New(cfg domain.Config, hw ports.Hardware, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := hw.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hardware: %w", err)
	}

	c := &Controller{cfg: cfg, hw: hw, newID: uuid.NewString}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}

	hw.Guard.SetPosition(runtime.GuardNeutral)
	c.reset()

	c.logger.Info("controller initialized",
		"turn", cfg.Turn,
		"target", cfg.Target,
		"start_delay", cfg.StartDelay,
		"opening", cfg.OpeningState(),
	)
	return c, nil
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() domain.Config {
	return c.cfg
}

// OnStart resets every run-local value and positions the machine at Begin.
// A run may be started any number of times.
func (c *Controller) OnStart() {
	run := c.reset()
	c.logger.Debug("run started", "run_id", run.RunID)
	if c.hooks.OnRunStart != nil {
		c.hooks.OnRunStart(&domain.RunEvent{
			EventBase: domain.EventBase{Type: domain.EventRunStart, RunID: run.RunID},
			Config:    c.cfg,
		})
	}
}

func (c *Controller) reset() domain.RunContext {
	if c.hw.Arm != nil {
		c.hw.Arm.SetPosition(0)
	}
	c.hw.Slide.SetPower(0)

	run := domain.NewRunContext(c.newID())
	c.mu.Lock()
	c.run = run
	c.mu.Unlock()
	return *run
}

// OnTick advances the machine by exactly one step at the given run time.
func (c *Controller) OnTick(elapsed time.Duration) {
	c.hw.Range.Refresh()
	readings := c.sample(elapsed)

	c.mu.Lock()
	from := c.run.State
	enteredAt := c.run.EnteredAt
	cmd, moved := runtime.Step(c.cfg, c.run, readings)
	run := *c.run
	c.mu.Unlock()

	c.apply(cmd)
	c.report(run, readings, cmd)

	if moved {
		c.logger.Debug("state transition",
			"run_id", run.RunID,
			"from", from,
			"to", run.State,
			"elapsed", elapsed,
		)
		c.fireTransition(run, from, elapsed, elapsed-enteredAt)
	}
	if c.hooks.OnTick != nil {
		c.hooks.OnTick(&domain.TickEvent{
			EventBase: domain.EventBase{Type: domain.EventTick, RunID: run.RunID, Elapsed: elapsed},
			State:     run.State,
			Readings:  readings,
			Commands:  cmd,
		})
	}
}

// State returns the current state.
func (c *Controller) State() domain.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.run.State
}

// Run returns a copy of the current run context.
func (c *Controller) Run() domain.RunContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c.run
}

// sample reads every sensor exactly once.
func (c *Controller) sample(elapsed time.Duration) domain.Readings {
	return domain.Readings{
		Elapsed:    elapsed,
		Brightness: c.hw.Bottom.Brightness(),
		FrontRed:   c.hw.Front.Red(),
		FrontGreen: c.hw.Front.Green(),
		FrontBlue:  c.hw.Front.Blue(),
		FrontAlpha: c.hw.Front.Alpha(),
		Optical:    c.hw.Range.Optical(),
		Ultrasonic: c.hw.Range.Ultrasonic(),
	}
}

func (c *Controller) apply(cmd domain.Commands) {
	if cmd.Drive != nil {
		ports.ApplyDrive(c.hw.Drive, *cmd.Drive)
	}
	if cmd.Flywheel != nil {
		c.hw.FlywheelLeft.SetPower(*cmd.Flywheel)
		c.hw.FlywheelRight.SetPower(*cmd.Flywheel)
	}
	if cmd.Slide != nil {
		c.hw.Slide.SetPower(*cmd.Slide)
	}
	if cmd.Guard != nil {
		c.hw.Guard.SetPosition(*cmd.Guard)
	}
}

// report publishes the status lines of the tick. Times are seconds.
func (c *Controller) report(run domain.RunContext, r domain.Readings, cmd domain.Commands) {
	t := c.hw.Telemetry
	t.Report(domain.KeyDoing, cmd.Activity)
	t.Report(domain.KeyState, run.State.String())
	t.Report(domain.KeyColor, r.FrontAlpha)
	t.Report(domain.KeyOptical, r.Optical)
	t.Report(domain.KeyUltrasonic, r.Ultrasonic)
	t.Report(domain.KeyEnteredAt, run.EnteredAt.Seconds())
	t.Report(domain.KeyElapsed, r.Elapsed.Seconds())
	t.Report(domain.KeyRunID, run.RunID)
	t.Report(domain.KeyLeftGuess, run.LeftGuess.String())
	t.Report(domain.KeyRightGuess, run.RightGuess.String())
}

func (c *Controller) fireTransition(run domain.RunContext, from domain.State, elapsed, dwell time.Duration) {
	base := func(t domain.EventType) domain.EventBase {
		return domain.EventBase{Type: t, RunID: run.RunID, Elapsed: elapsed}
	}
	if c.hooks.OnStateLeave != nil {
		c.hooks.OnStateLeave(&domain.StateEvent{
			EventBase: base(domain.EventStateLeave),
			State:     from,
			Peer:      run.State,
			Dwell:     dwell,
		})
	}
	if c.hooks.OnStateEnter != nil {
		c.hooks.OnStateEnter(&domain.StateEvent{
			EventBase: base(domain.EventStateEnter),
			State:     run.State,
			Peer:      from,
		})
	}
}
