package truman_test

import (
	"testing"
	"time"

	"github.com/aretw0/truman"
	"github.com/aretw0/truman/pkg/adapters/memory"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 50 * time.Millisecond

// field scripts the sensors from the state the robot is in and how many
// ticks it has spent there.
func field(robot *memory.Robot, s domain.State, n int) {
	bright, optical := 0, 0
	switch s {
	case domain.Searching:
		if n >= 3 {
			bright = 3
		}
	case domain.Stopped:
		bright = 3
	case domain.MovingBeyond:
		bright = 3
		if n >= 4 {
			bright = 1
		}
	case domain.MovingTimed:
		bright = 1
	case domain.Orienting:
		if n >= 5 {
			bright = 3
		}
	case domain.Moving:
		if n >= 2 {
			optical = 12
		}
	}
	robot.Bottom.Values.Set(bright)
	robot.Range.OpticalValues.Set(optical)
	robot.Range.UltrasonicValues.Set(40)
	robot.Front.R.Set(10)
	robot.Front.B.Set(1)
	robot.Front.A.Set(7)
}

func newController(t *testing.T, cfg domain.Config, opts ...truman.Option) (*truman.Controller, *memory.Robot) {
	t.Helper()
	robot := memory.NewRobot()
	ctrl, err := truman.New(cfg, robot.Hardware(nil), opts...)
	require.NoError(t, err)
	return ctrl, robot
}

func TestController_EndToEnd(t *testing.T) {
	var path []domain.State
	hooks := domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) { path = append(path, e.State) },
	}
	ctrl, robot := newController(t, domain.DefaultConfig(), truman.WithLifecycleHooks(hooks))
	ctrl.OnStart()

	dwell := map[domain.State]int{}
	var backwardBeforeGate bool
	elapsed := time.Duration(0)
	for ; ctrl.State() != domain.Done && elapsed < 30*time.Second; elapsed += tick {
		s := ctrl.State()
		field(robot, s, dwell[s])
		dwell[s]++
		ctrl.OnTick(elapsed)
		if elapsed < 10*time.Second && robot.Drive.Power() == domain.Backward(0.2) {
			backwardBeforeGate = true
		}
	}

	require.Equal(t, domain.Done, ctrl.State())
	assert.False(t, backwardBeforeGate, "backward power before the safety gate")
	assert.GreaterOrEqual(t, elapsed, 10*time.Second, "done only after the safety gate")
	assert.Equal(t, []domain.State{
		domain.Searching,
		domain.Stopped,
		domain.MovingBeyond,
		domain.MovingTimed,
		domain.Orienting,
		domain.Moving,
		domain.ScanningLeft,
		domain.CenteringFromLeft,
		domain.ScanningRight,
		domain.CenteringFromRight,
		domain.Picking,
		domain.GoLeft,
		domain.Clicking,
		domain.Backing,
		domain.Done,
	}, path)

	run := ctrl.Run()
	assert.Equal(t, domain.Known(domain.Red), run.LeftGuess)
	assert.Equal(t, domain.Known(domain.Red), run.RightGuess)
	assert.Equal(t, 5*tick, run.TimeToMove, "measured from state entry, one tick before the first sample")

	for i := 0; i < 5; i++ {
		ctrl.OnTick(elapsed)
		elapsed += tick
		assert.Equal(t, domain.Done, ctrl.State())
		assert.True(t, robot.Drive.Power().Stopped())
	}
}

func TestController_NewPositionsGuardAndValidates(t *testing.T) {
	_, robot := newController(t, domain.DefaultConfig())
	guard, ok := robot.Guard.Value()
	require.True(t, ok)
	assert.Equal(t, 0.5, guard)
	slide, _ := robot.Slide.Value()
	assert.Zero(t, slide)

	bad := domain.DefaultConfig()
	bad.StartDelay = -time.Second
	_, err := truman.New(bad, robot.Hardware(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	hw := robot.Hardware(nil)
	hw.Drive = nil
	_, err = truman.New(domain.DefaultConfig(), hw)
	assert.ErrorIs(t, err, domain.ErrMissingHardware)
}

func TestController_TelemetryEveryTick(t *testing.T) {
	ctrl, robot := newController(t, domain.DefaultConfig(),
		truman.WithRunID(func() string { return "run-1" }))
	ctrl.OnStart()
	robot.Front.A.Set(9)
	robot.Range.OpticalValues.Set(4)
	robot.Range.UltrasonicValues.Set(33)

	ctrl.OnTick(0)
	ctrl.OnTick(250 * time.Millisecond)

	snap := robot.Telemetry.Snapshot()
	assert.Equal(t, "searching", snap[domain.KeyDoing])
	assert.Equal(t, "Searching", snap[domain.KeyState])
	assert.Equal(t, 9, snap[domain.KeyColor])
	assert.Equal(t, 4, snap[domain.KeyOptical])
	assert.Equal(t, 33, snap[domain.KeyUltrasonic])
	assert.Equal(t, 0.0, snap[domain.KeyEnteredAt])
	assert.Equal(t, 0.25, snap[domain.KeyElapsed])
	assert.Equal(t, "run-1", snap[domain.KeyRunID])
	assert.Equal(t, "none", snap[domain.KeyLeftGuess])
	assert.Equal(t, 2, robot.Range.Refreshes(), "one refresh per tick")
	assert.Equal(t, 2, robot.Bottom.Values.Reads(), "one brightness sample per tick")
}

func TestController_OnStartResetsRun(t *testing.T) {
	var starts int
	ids := []string{"a", "b", "c"}
	next := 0
	ctrl, robot := newController(t, domain.DefaultConfig(),
		truman.WithRunID(func() string { id := ids[next]; next++; return id }),
		truman.WithLifecycleHooks(domain.LifecycleHooks{
			OnRunStart: func(*domain.RunEvent) { starts++ },
		}))

	ctrl.OnStart()
	robot.Bottom.Values.Set(3)
	ctrl.OnTick(0)
	ctrl.OnTick(100 * time.Millisecond)
	require.Equal(t, domain.Stopped, ctrl.State())

	ctrl.OnStart()
	run := ctrl.Run()
	assert.Equal(t, domain.Begin, run.State)
	assert.Zero(t, run.EnteredAt)
	assert.Zero(t, run.Ticks)
	assert.False(t, run.LeftGuess.Valid)
	assert.Equal(t, "c", run.RunID)
	assert.Equal(t, 2, starts)

	arm, ok := robot.Arm.Value()
	require.True(t, ok)
	assert.Zero(t, arm)
	assert.Equal(t, []float64{0, 0, 0}, robot.Slide.History())
}

func TestController_TransitionHooks(t *testing.T) {
	var leaves []*domain.StateEvent
	var ticks int
	ctrl, robot := newController(t, domain.DefaultConfig(), truman.WithLifecycleHooks(domain.LifecycleHooks{
		OnStateLeave: func(e *domain.StateEvent) { leaves = append(leaves, e) },
		OnTick:       func(*domain.TickEvent) { ticks++ },
	}))
	ctrl.OnStart()

	ctrl.OnTick(0)
	robot.Bottom.Values.Set(3)
	ctrl.OnTick(700 * time.Millisecond)

	require.Len(t, leaves, 2)
	assert.Equal(t, domain.Begin, leaves[0].State)
	assert.Equal(t, domain.Searching, leaves[1].State)
	assert.Equal(t, domain.Stopped, leaves[1].Peer)
	assert.Equal(t, 700*time.Millisecond, leaves[1].Dwell)
	assert.Equal(t, 2, ticks)
}

func TestController_OpeningPrelude(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Opening = domain.RampUpShootStageOne
	ctrl, robot := newController(t, cfg)
	ctrl.OnStart()

	ctrl.OnTick(0)
	ctrl.OnTick(100 * time.Millisecond)
	assert.Equal(t, domain.RampUpShootStageOne, ctrl.State())
	left, _ := robot.FlywheelLeft.Value()
	right, _ := robot.FlywheelRight.Value()
	assert.Equal(t, 0.4, left)
	assert.Equal(t, 0.4, right)
}
