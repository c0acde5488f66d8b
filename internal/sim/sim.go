package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/truman"
	"github.com/aretw0/truman/pkg/adapters/memory"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/aretw0/truman/pkg/ports"
	"github.com/aretw0/truman/pkg/telemetry"
)

// Sim plays a scenario's field to a controller on an in-memory robot.
// It implements ports.Controller, so pkg/runner can drive it in real time;
// Simulate drives it on a virtual clock.
type Sim struct {
	scenario *Scenario
	robot    *memory.Robot
	ctrl     *truman.Controller
	trace    *Trace

	dwell int
	last  domain.State
}

// New builds the robot and controller for s. Telemetry goes to the robot's
// recorder and, when sink is non-nil, to sink as well.
func New(s *Scenario, sink ports.Telemetry, opts ...truman.Option) (*Sim, error) {
	sm := &Sim{scenario: s, robot: memory.NewRobot()}
	sm.trace = &Trace{Scenario: s.Name, Config: s.Config}

	hooks := domain.LifecycleHooks{
		OnRunStart: func(e *domain.RunEvent) {
			sm.trace.reset(e.RunID)
		},
		OnStateLeave: func(e *domain.StateEvent) {
			sm.trace.Steps = append(sm.trace.Steps, Step{
				At:    e.Elapsed,
				From:  e.State,
				To:    e.Peer,
				Dwell: e.Dwell,
			})
		},
	}
	opts = append([]truman.Option{truman.WithLifecycleHooks(hooks)}, opts...)

	ctrl, err := truman.New(s.Config, sm.robot.Hardware(telemetry.Tee(sm.robot.Telemetry, sink)), opts...)
	if err != nil {
		return nil, err
	}
	sm.ctrl = ctrl
	return sm, nil
}

// Controller returns the simulated controller.
func (sm *Sim) Controller() *truman.Controller { return sm.ctrl }

// Robot returns the simulated robot.
func (sm *Sim) Robot() *memory.Robot { return sm.robot }

// OnStart starts a new run.
func (sm *Sim) OnStart() {
	sm.dwell, sm.last = 0, domain.Begin
	sm.ctrl.OnStart()
}

// OnTick sets the sensors for the current state, then ticks.
func (sm *Sim) OnTick(elapsed time.Duration) {
	st := sm.ctrl.State()
	if st != sm.last {
		sm.dwell, sm.last = 0, st
	}
	sm.apply(sm.scenario.FrameAt(st, sm.dwell))
	sm.dwell++

	sm.ctrl.OnTick(elapsed)
	sm.trace.Ticks++
	sm.trace.Elapsed = elapsed
	sm.trace.Final = sm.ctrl.State()
}

// State returns the controller state.
func (sm *Sim) State() domain.State { return sm.ctrl.State() }

// Trace returns what happened so far.
func (sm *Sim) Trace() *Trace { return sm.trace }

func (sm *Sim) apply(f Frame) {
	r := sm.robot
	r.Bottom.Values.Set(value(f.Brightness))
	r.Front.R.Set(value(f.Red))
	r.Front.G.Set(value(f.Green))
	r.Front.B.Set(value(f.Blue))
	r.Front.A.Set(value(f.Alpha))
	r.Range.OpticalValues.Set(value(f.Optical))
	r.Range.UltrasonicValues.Set(value(f.Ultrasonic))
}

// Simulate runs s on a virtual clock until the scenario limit or until the
// controller has spent one tick in Done, so the final stop is applied.
func Simulate(s *Scenario, opts ...truman.Option) (*Trace, error) {
	sm, err := New(s, nil, opts...)
	if err != nil {
		return nil, err
	}
	sm.OnStart()
	for elapsed := time.Duration(0); elapsed <= s.Limit; elapsed += s.Tick {
		settled := sm.State().Terminal()
		sm.OnTick(elapsed)
		if settled {
			break
		}
	}
	tr := sm.Trace()
	tr.Run = sm.ctrl.Run()
	tr.Drive = sm.robot.Drive.Power()
	return tr, nil
}

// Step is one transition of the trace.
type Step struct {
	At    time.Duration `json:"at"`
	From  domain.State  `json:"from"`
	To    domain.State  `json:"to"`
	Dwell time.Duration `json:"dwell"`
}

// Trace records a simulated run.
type Trace struct {
	Scenario string            `json:"scenario"`
	Config   domain.Config     `json:"config"`
	RunID    string            `json:"run_id"`
	Steps    []Step            `json:"steps"`
	Ticks    int               `json:"ticks"`
	Elapsed  time.Duration     `json:"elapsed"`
	Final    domain.State      `json:"final"`
	Run      domain.RunContext `json:"run"`
	Drive    domain.DrivePower `json:"drive"`
}

func (t *Trace) reset(runID string) {
	t.RunID = runID
	t.Steps = nil
	t.Ticks = 0
	t.Elapsed = 0
	t.Final = domain.Begin
}

// Completed reports whether the run reached Done.
func (t *Trace) Completed() bool {
	return t.Final.Terminal()
}

// Visited lists every state the run was in, in order, Begin first.
func (t *Trace) Visited() []domain.State {
	out := []domain.State{domain.Begin}
	for _, s := range t.Steps {
		out = append(out, s.To)
	}
	return out
}

// Markdown renders the trace as a table.
func (t *Trace) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", t.Scenario)
	fmt.Fprintf(&sb, "turn **%s**, target **%s**, start delay **%s**\n\n", t.Config.Turn, t.Config.Target, t.Config.StartDelay)
	sb.WriteString("| at | from | to | dwell |\n")
	sb.WriteString("|---:|---|---|---:|\n")
	for _, s := range t.Steps {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", s.At, s.From, s.To, s.Dwell)
	}
	status := "completed"
	if !t.Completed() {
		status = "stopped in " + t.Final.String()
	}
	fmt.Fprintf(&sb, "\n%d ticks, %s, %s. Left guess %s, right guess %s.\n",
		t.Ticks, t.Elapsed, status, t.Run.LeftGuess, t.Run.RightGuess)
	return sb.String()
}
