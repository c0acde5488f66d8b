package runtime

import (
	"time"

	"github.com/aretw0/truman/pkg/domain"
)

// Input is everything a policy may read during one tick.
// Policies may write the scratch fields of Run but never Run.State or
// Run.EnteredAt; Step owns those.
type Input struct {
	Config   domain.Config
	Run      *domain.RunContext
	Readings domain.Readings
}

// Elapsed is the state-relative elapsed time of this tick.
func (in Input) Elapsed() time.Duration {
	return in.Run.Since(in.Readings.Elapsed)
}

// Now is the absolute elapsed time of this tick.
func (in Input) Now() time.Duration {
	return in.Readings.Elapsed
}

// Policy evaluates one state for one tick. It returns the commands to apply
// and, when ok is true, the state to move to.
type Policy func(in Input) (cmd domain.Commands, next domain.State, ok bool)

var policies = map[domain.State]Policy{
	domain.Begin:                 begin,
	domain.RampUpShootStageOne:   flywheelStage("ramp up shoot stage one", RampUpStageOnePower, domain.RampUpShootStageTwo),
	domain.RampUpShootStageTwo:   flywheelStage("ramp up shoot stage two", RampUpStageTwoPower, domain.ShootingBalls),
	domain.ShootingBalls:         shootingBalls,
	domain.RampDownShootStageOne: flywheelStage("ramp down shoot stage one", RampDownStageOnePower, domain.RampDownShootStageTwo),
	domain.RampDownShootStageTwo: rampDownStageTwo,
	domain.DrivingTowardsBall:    drivingTowardsBall,
	domain.BackingFromBall:       backingFromBall,
	domain.Start:                 start,
	domain.Turning:               turning,
	domain.Searching:             searching,
	domain.Stopped:               stopped,
	domain.MovingBeyond:          movingBeyond,
	domain.MovingTimed:           movingTimed,
	domain.Orienting:             orienting,
	domain.OrientingFurther:      orientingFurther,
	domain.OrientingBack:         orientingBack,
	domain.Moving:                moving,
	domain.ScanningLeft:          scanningLeft,
	domain.CenteringFromLeft:     centeringFromLeft,
	domain.ScanningRight:         scanningRight,
	domain.CenteringFromRight:    centeringFromRight,
	domain.Picking:               picking,
	domain.GoLeft:                slideTo("going left", ScanLeftSlidePower),
	domain.GoRight:               slideTo("going right", ScanRightSlidePower),
	domain.Clicking:              clicking,
	domain.Backing:               backing,
	domain.Done:                  done,
}

// PolicyFor returns the policy of s. Unknown states behave like Done.
func PolicyFor(s domain.State) Policy {
	if p, ok := policies[s]; ok {
		return p
	}
	return done
}

// Step advances the machine by exactly one tick. It evaluates the current
// state's policy against in, applies the requested transition to run (the
// entry timestamp becomes the tick's elapsed time) and returns the commands
// for this tick together with whether a transition happened.
func Step(cfg domain.Config, run *domain.RunContext, readings domain.Readings) (domain.Commands, bool) {
	in := Input{Config: cfg, Run: run, Readings: readings}
	cmd, next, ok := PolicyFor(run.State)(in)
	run.Ticks++
	if ok {
		run.Enter(next, readings.Elapsed)
	}
	return cmd, ok
}
