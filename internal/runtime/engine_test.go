package runtime_test

import (
	"testing"
	"time"

	"github.com/aretw0/truman/internal/runtime"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

// neutral readings satisfy no sensor predicate: brightness is between the
// thresholds, the range is short and the colors are balanced.
func neutral(at time.Duration) domain.Readings {
	return domain.Readings{Elapsed: at, Brightness: 2, FrontRed: 5, FrontBlue: 5}
}

func runAt(state domain.State, enteredAt time.Duration) *domain.RunContext {
	rc := domain.NewRunContext("test")
	rc.State = state
	rc.EnteredAt = enteredAt
	return rc
}

func TestStep_EveryStateReportsActivity(t *testing.T) {
	cfg := domain.DefaultConfig()
	for _, s := range domain.States() {
		cmd, _ := runtime.Step(cfg, runAt(s, 0), neutral(100*ms))
		assert.NotEmpty(t, cmd.Activity, "state %s", s)
	}
}

func TestStep_NoSpuriousTransitions(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.StartDelay = time.Hour

	immediate := map[domain.State]bool{
		domain.Begin:              true,
		domain.CenteringFromRight: true,
		domain.Picking:            true,
	}

	for _, s := range domain.States() {
		if immediate[s] || s == domain.Done {
			continue
		}
		t.Run(s.String(), func(t *testing.T) {
			rc := runAt(s, 0)
			rc.TimeToMove = time.Second
			rc.ScanDuration = time.Second

			_, moved := runtime.Step(cfg, rc, neutral(100*ms))
			require.False(t, moved)
			afterOne := rc.State

			for at := 110 * ms; at < 400*ms; at += 10 * ms {
				_, moved := runtime.Step(cfg, rc, neutral(at))
				require.False(t, moved, "moved at %s", at)
			}
			assert.Equal(t, afterOne, rc.State)
			assert.Equal(t, s, rc.State)
			assert.Zero(t, rc.EnteredAt)
		})
	}
}

func TestStep_RampUpStageOneTimedGate(t *testing.T) {
	cfg := domain.DefaultConfig()
	t0 := 5 * time.Second
	rc := runAt(domain.RampUpShootStageOne, t0)

	for d := 100 * ms; d <= 590*ms; d += 10 * ms {
		cmd, moved := runtime.Step(cfg, rc, neutral(t0+d))
		require.False(t, moved, "moved early at +%s", d)
		require.NotNil(t, cmd.Flywheel)
		assert.Equal(t, runtime.RampUpStageOnePower, *cmd.Flywheel)
	}

	_, moved := runtime.Step(cfg, rc, neutral(t0+600*ms))
	require.True(t, moved)
	assert.Equal(t, domain.RampUpShootStageTwo, rc.State)
	assert.Equal(t, t0+600*ms, rc.EnteredAt)
}

func TestStep_SearchingStopsOnlyOnWhite(t *testing.T) {
	cfg := domain.DefaultConfig()
	rc := runAt(domain.Searching, 0)

	for i, b := range []int{0, 0, 2, 3} {
		r := neutral(time.Duration(i+1) * 20 * ms)
		r.Brightness = b
		cmd, moved := runtime.Step(cfg, rc, r)

		require.NotNil(t, cmd.Drive)
		assert.Equal(t, domain.Forward(runtime.SlowMotorPower), *cmd.Drive)
		if b < 3 {
			require.False(t, moved, "brightness %d", b)
			assert.Equal(t, domain.Searching, rc.State)
		} else {
			require.True(t, moved)
			assert.Equal(t, domain.Stopped, rc.State)
			assert.Equal(t, 80*ms, rc.EnteredAt)
		}
	}
}

func TestStep_Picking(t *testing.T) {
	tests := []struct {
		name        string
		left, right domain.Guess
		target      domain.TargetColor
		want        domain.State
	}{
		{"left matches", domain.Known(domain.Red), domain.Known(domain.Blue), domain.Red, domain.GoLeft},
		{"right matches", domain.Known(domain.Blue), domain.Known(domain.Red), domain.Red, domain.GoRight},
		{"neither matches", domain.Known(domain.Blue), domain.Known(domain.Blue), domain.Red, domain.GoRight},
		{"nothing resolved", domain.Guess{}, domain.Guess{}, domain.Blue, domain.GoRight},
		{"both match prefers left", domain.Known(domain.Blue), domain.Known(domain.Blue), domain.Blue, domain.GoLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			cfg.Target = tt.target
			rc := runAt(domain.Picking, 0)
			rc.LeftGuess, rc.RightGuess = tt.left, tt.right

			_, moved := runtime.Step(cfg, rc, neutral(10*ms))
			require.True(t, moved)
			assert.Equal(t, tt.want, rc.State)
		})
	}
}

func TestStep_MovingPrefersRangeOverTimeout(t *testing.T) {
	cfg := domain.DefaultConfig()

	rc := runAt(domain.Moving, 0)
	r := neutral(3500 * ms)
	r.Optical = runtime.DistanceMinimum
	_, moved := runtime.Step(cfg, rc, r)
	require.True(t, moved)
	assert.Equal(t, domain.ScanningLeft, rc.State)

	rc = runAt(domain.Moving, 0)
	_, moved = runtime.Step(cfg, rc, neutral(3*time.Second))
	assert.False(t, moved, "timeout is strictly greater than 3s")

	_, moved = runtime.Step(cfg, rc, neutral(3001*ms))
	require.True(t, moved)
	assert.Equal(t, domain.Backing, rc.State)
}

func TestStep_BackingSafetyGate(t *testing.T) {
	cfg := domain.DefaultConfig()

	t.Run("no reverse before ten seconds", func(t *testing.T) {
		rc := runAt(domain.Backing, 2*time.Second)
		for at := 2 * time.Second; at < runtime.BackingSafetyGate; at += 50 * ms {
			cmd, moved := runtime.Step(cfg, rc, neutral(at))
			require.False(t, moved)
			assert.Nil(t, cmd.Drive, "drive commanded at %s", at)
		}

		cmd, moved := runtime.Step(cfg, rc, neutral(runtime.BackingSafetyGate))
		require.NotNil(t, cmd.Drive)
		assert.Equal(t, domain.Backward(runtime.MotorPower), *cmd.Drive)
		assert.True(t, moved, "state-relative time already exceeds the backing time")
		assert.Equal(t, domain.Done, rc.State)
	})

	t.Run("entered late backs for a full second", func(t *testing.T) {
		rc := runAt(domain.Backing, 9500*ms)
		_, moved := runtime.Step(cfg, rc, neutral(10*time.Second))
		require.False(t, moved)

		cmd, moved := runtime.Step(cfg, rc, neutral(10400*ms))
		require.False(t, moved)
		require.NotNil(t, cmd.Drive)

		_, moved = runtime.Step(cfg, rc, neutral(10500*ms))
		require.True(t, moved)
		assert.Equal(t, domain.Done, rc.State)
	})
}

func TestStep_ScanSequence(t *testing.T) {
	cfg := domain.DefaultConfig()
	rc := runAt(domain.ScanningLeft, 0)

	// Nothing recognisable yet: keep sliding left.
	cmd, moved := runtime.Step(cfg, rc, neutral(100*ms))
	require.False(t, moved)
	require.NotNil(t, cmd.Slide)
	assert.Equal(t, runtime.ScanLeftSlidePower, *cmd.Slide)

	red := neutral(300 * ms)
	red.FrontRed, red.FrontBlue = 10, 1
	cmd, moved = runtime.Step(cfg, rc, red)
	require.True(t, moved)
	assert.Nil(t, cmd.Slide)
	assert.Equal(t, domain.CenteringFromLeft, rc.State)
	assert.Equal(t, 300*ms, rc.ScanDuration)
	assert.True(t, rc.LeftGuess.Is(domain.Red))

	cmd, moved = runtime.Step(cfg, rc, neutral(400*ms))
	require.False(t, moved)
	require.NotNil(t, cmd.Slide)
	assert.Equal(t, runtime.ScanRightSlidePower, *cmd.Slide)

	_, moved = runtime.Step(cfg, rc, neutral(600*ms))
	require.True(t, moved)
	assert.Equal(t, domain.ScanningRight, rc.State)

	blue := neutral(700 * ms)
	blue.FrontRed, blue.FrontBlue = 1, 10
	_, moved = runtime.Step(cfg, rc, blue)
	require.True(t, moved)
	assert.Equal(t, domain.CenteringFromRight, rc.State)
	assert.True(t, rc.RightGuess.Is(domain.Blue))

	cmd, moved = runtime.Step(cfg, rc, neutral(710*ms))
	require.True(t, moved)
	require.NotNil(t, cmd.Slide, "one more nudge right")
	assert.Equal(t, domain.Picking, rc.State)

	_, _ = runtime.Step(cfg, rc, neutral(720*ms))
	assert.Equal(t, domain.GoLeft, rc.State)
	assert.True(t, rc.LeftGuess.Is(domain.Red), "guesses survive later reads")
}

func TestStep_ScanningLeftTimesOutWithoutGuess(t *testing.T) {
	cfg := domain.DefaultConfig()
	rc := runAt(domain.ScanningLeft, 0)

	_, moved := runtime.Step(cfg, rc, neutral(999*ms))
	require.False(t, moved)
	_, moved = runtime.Step(cfg, rc, neutral(time.Second))
	require.True(t, moved)
	assert.Equal(t, time.Second, rc.ScanDuration)
	assert.False(t, rc.LeftGuess.Valid)
}

func TestStep_OrientingFollowsTurnSide(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Turn = domain.TurnLeft

	rc := runAt(domain.Orienting, 0)
	cmd, _ := runtime.Step(cfg, rc, neutral(10*ms))
	require.NotNil(t, cmd.Drive)
	assert.Equal(t, domain.PivotRight(runtime.SlowTurnPower), *cmd.Drive, "orients away from the turn side")

	white := neutral(20 * ms)
	white.Brightness = 3
	cmd, moved := runtime.Step(cfg, rc, white)
	require.True(t, moved)
	assert.True(t, cmd.Drive.Stopped())
	assert.Equal(t, domain.Moving, rc.State)
}

func TestStep_OrientingFurtherAndBack(t *testing.T) {
	cfg := domain.DefaultConfig()
	rc := runAt(domain.OrientingFurther, time.Second)

	off := neutral(1800 * ms)
	off.Brightness = 1
	cmd, moved := runtime.Step(cfg, rc, off)
	require.True(t, moved)
	assert.Nil(t, cmd.Drive)
	assert.Equal(t, domain.OrientingBack, rc.State)
	assert.Equal(t, 800*ms, rc.TimeToMove)

	cmd, moved = runtime.Step(cfg, rc, neutral(2200*ms))
	require.False(t, moved)
	assert.Equal(t, domain.PivotRight(runtime.SlowTurnPower), *cmd.Drive)

	cmd, moved = runtime.Step(cfg, rc, neutral(2201*ms))
	require.True(t, moved)
	assert.True(t, cmd.Drive.Stopped())
	assert.Equal(t, domain.Moving, rc.State)
}

func TestStep_LineCrossingRecordsTimeToMove(t *testing.T) {
	cfg := domain.DefaultConfig()
	rc := runAt(domain.MovingBeyond, time.Second)

	off := neutral(1700 * ms)
	off.Brightness = 0
	_, moved := runtime.Step(cfg, rc, off)
	require.True(t, moved)
	assert.Equal(t, 700*ms, rc.TimeToMove)
	assert.Equal(t, domain.MovingTimed, rc.State)

	_, moved = runtime.Step(cfg, rc, neutral(2400*ms))
	assert.False(t, moved, "needs strictly more than the recorded time")
	_, moved = runtime.Step(cfg, rc, neutral(2401*ms))
	require.True(t, moved)
	assert.Equal(t, domain.Orienting, rc.State)
}

func TestStep_ShootingPrelude(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Opening = domain.RampUpShootStageOne
	rc := domain.NewRunContext("prelude")

	var (
		visited  []domain.State
		guard    *float64
		lastWing *float64
	)
	for at := time.Duration(0); at <= 8*time.Second && rc.State != domain.Searching; at += 50 * ms {
		before := rc.State
		cmd, moved := runtime.Step(cfg, rc, neutral(at))
		if cmd.Guard != nil {
			guard = cmd.Guard
		}
		if cmd.Flywheel != nil {
			lastWing = cmd.Flywheel
		}
		if moved {
			visited = append(visited, before)
		}
	}

	assert.Equal(t, []domain.State{
		domain.Begin,
		domain.RampUpShootStageOne,
		domain.RampUpShootStageTwo,
		domain.ShootingBalls,
		domain.RampDownShootStageOne,
		domain.RampDownShootStageTwo,
		domain.Start,
		domain.Turning,
	}, visited)
	assert.Equal(t, domain.Searching, rc.State)
	require.NotNil(t, guard)
	assert.Equal(t, runtime.GuardOpen, *guard)
	require.NotNil(t, lastWing)
	assert.Zero(t, *lastWing, "flywheels are cut when the ramp down ends")
}

func TestStep_StartWaitsForAbsoluteDelay(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.StartDelay = 3 * time.Second
	rc := runAt(domain.Start, 2900*ms)

	_, moved := runtime.Step(cfg, rc, neutral(2999*ms))
	require.False(t, moved)
	_, moved = runtime.Step(cfg, rc, neutral(3*time.Second))
	require.True(t, moved)
	assert.Equal(t, domain.Turning, rc.State)
}

func TestStep_BallManeuvers(t *testing.T) {
	cfg := domain.DefaultConfig()

	rc := runAt(domain.DrivingTowardsBall, 0)
	cmd, _ := runtime.Step(cfg, rc, neutral(time.Second))
	assert.Equal(t, domain.Backward(runtime.MotorPower), *cmd.Drive)
	cmd, moved := runtime.Step(cfg, rc, neutral(runtime.TimeTowardsBall))
	require.True(t, moved)
	assert.True(t, cmd.Drive.Stopped())
	assert.Equal(t, domain.Start, rc.State)

	rc = runAt(domain.BackingFromBall, 0)
	cmd, _ = runtime.Step(cfg, rc, neutral(500*ms))
	assert.Equal(t, domain.Forward(runtime.MotorPower), *cmd.Drive)
	cmd, moved = runtime.Step(cfg, rc, neutral(time.Second))
	require.True(t, moved)
	assert.True(t, cmd.Drive.Stopped())
	assert.Equal(t, domain.Turning, rc.State)
}

func TestStep_DoneKeepsStopping(t *testing.T) {
	cfg := domain.DefaultConfig()
	rc := runAt(domain.Done, 12*time.Second)

	for at := 12 * time.Second; at < 13*time.Second; at += 100 * ms {
		cmd, moved := runtime.Step(cfg, rc, neutral(at))
		require.False(t, moved)
		require.NotNil(t, cmd.Drive)
		assert.True(t, cmd.Drive.Stopped())
	}
	assert.Equal(t, uint64(10), rc.Ticks)
}

func TestTransitions_CoverEveryState(t *testing.T) {
	edges := runtime.Transitions(domain.DefaultConfig())

	seen := make(map[domain.State]bool)
	for _, e := range edges {
		seen[e.From] = true
		seen[e.To] = true
		assert.NotEqual(t, domain.Done, e.From, "Done is terminal")
	}
	for _, s := range domain.States() {
		assert.True(t, seen[s], "state %s missing from graph", s)
	}
	assert.Equal(t, domain.Searching, edges[0].To)
}
