package runtime

import "github.com/aretw0/truman/pkg/domain"

func stay(cmd domain.Commands) (domain.Commands, domain.State, bool) {
	return cmd, 0, false
}

func move(cmd domain.Commands, next domain.State) (domain.Commands, domain.State, bool) {
	return cmd, next, true
}

func doing(activity string) domain.Commands {
	return domain.Commands{Activity: activity}
}

// pivotToward turns toward the configured side.
func pivotToward(t domain.Turn, p float64) domain.DrivePower {
	if t == domain.TurnLeft {
		return domain.PivotLeft(p)
	}
	return domain.PivotRight(p)
}

// pivotAway turns away from the configured side.
func pivotAway(t domain.Turn, p float64) domain.DrivePower {
	if t == domain.TurnLeft {
		return domain.PivotRight(p)
	}
	return domain.PivotLeft(p)
}

func begin(in Input) (domain.Commands, domain.State, bool) {
	return move(doing("beginning"), in.Config.OpeningState())
}

// flywheelStage holds both flywheels at power for RampTime, then moves on.
func flywheelStage(activity string, power float64, next domain.State) Policy {
	return func(in Input) (domain.Commands, domain.State, bool) {
		cmd := doing(activity)
		if in.Elapsed() < RampTime {
			return stay(cmd.WithFlywheel(power))
		}
		return move(cmd, next)
	}
}

func shootingBalls(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("shooting balls")
	if in.Elapsed() < ShootingTime {
		return stay(cmd.WithFlywheel(ShootingPower).WithGuard(GuardOpen))
	}
	return move(cmd, domain.RampDownShootStageOne)
}

func rampDownStageTwo(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("ramp down shoot stage two")
	if in.Elapsed() < RampTime {
		return stay(cmd.WithFlywheel(RampDownStageTwoPower))
	}
	return move(cmd.WithFlywheel(0), domain.Start)
}

func drivingTowardsBall(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("driving towards ball")
	if in.Elapsed() >= TimeTowardsBall {
		return move(cmd.WithDrive(domain.Stop()), domain.Start)
	}
	return stay(cmd.WithDrive(domain.Backward(MotorPower)))
}

// start waits for the absolute start delay, not a state-relative one.
func start(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("starting")
	if in.Now() >= in.Config.StartDelay {
		return move(cmd, domain.Turning)
	}
	return stay(cmd)
}

func backingFromBall(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("backing from ball")
	if in.Elapsed() >= TimeFromBall {
		return move(cmd.WithDrive(domain.Stop()), domain.Turning)
	}
	return stay(cmd.WithDrive(domain.Forward(MotorPower)))
}

func turning(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("turning").WithDrive(pivotToward(in.Config.Turn, MotorPower))
	if in.Elapsed() >= FirstTurningTime {
		return move(cmd, domain.Searching)
	}
	return stay(cmd)
}

func searching(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("searching").WithDrive(domain.Forward(SlowMotorPower))
	if in.Readings.Brightness >= OnWhiteThreshold {
		return move(cmd, domain.Stopped)
	}
	return stay(cmd)
}

func stopped(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("stopped")
	if in.Elapsed() <= TimeStopped {
		return stay(cmd.WithDrive(domain.Stop()))
	}
	return move(cmd, domain.MovingBeyond)
}

func movingBeyond(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("moving beyond").WithDrive(domain.Forward(SlowMotorPower))
	if in.Readings.Brightness <= OffWhiteThreshold {
		in.Run.TimeToMove = in.Elapsed()
		return move(cmd, domain.MovingTimed)
	}
	return stay(cmd)
}

func movingTimed(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("moving timed").WithDrive(domain.Forward(SlowMotorPower))
	if in.Elapsed() > in.Run.TimeToMove {
		return move(cmd, domain.Orienting)
	}
	return stay(cmd)
}

func orienting(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("orienting")
	if in.Readings.Brightness >= OnWhiteThreshold {
		return move(cmd.WithDrive(domain.Stop()), domain.Moving)
	}
	return stay(cmd.WithDrive(pivotAway(in.Config.Turn, SlowTurnPower)))
}

func orientingFurther(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("orienting further")
	if in.Readings.Brightness <= OffWhiteThreshold {
		in.Run.TimeToMove = in.Elapsed()
		return move(cmd, domain.OrientingBack)
	}
	return stay(cmd)
}

func orientingBack(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("orienting back")
	if in.Elapsed() > in.Run.TimeToMove/2 {
		return move(cmd.WithDrive(domain.Stop()), domain.Moving)
	}
	return stay(cmd.WithDrive(pivotToward(in.Config.Turn, SlowTurnPower)))
}

// moving checks the range sensor before the timeout, so a reading that
// succeeds on the timeout tick still leads to scanning.
func moving(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("moving").WithDrive(domain.Forward(SlowMotorPower))
	if in.Readings.Optical >= DistanceMinimum {
		return move(cmd, domain.ScanningLeft)
	}
	if in.Elapsed() > MovingTimeout {
		return move(cmd, domain.Backing)
	}
	return stay(cmd)
}

func frontGuess(in Input) domain.Guess {
	return ClassifyFrontColor(in.Readings.FrontRed, in.Readings.FrontBlue)
}

func scanningLeft(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("scanning left")
	in.Run.RecordLeft(frontGuess(in))

	elapsed := in.Elapsed()
	if elapsed < ScanTime && !in.Run.LeftGuess.Valid {
		return stay(cmd.WithSlide(ScanLeftSlidePower))
	}
	in.Run.ScanDuration = elapsed
	return move(cmd, domain.CenteringFromLeft)
}

func centeringFromLeft(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("centering from left")
	if in.Elapsed() < in.Run.ScanDuration {
		return stay(cmd.WithSlide(ScanRightSlidePower))
	}
	return move(cmd, domain.ScanningRight)
}

func scanningRight(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("scanning right")
	in.Run.RecordRight(frontGuess(in))

	if in.Elapsed() < in.Run.ScanDuration && !in.Run.RightGuess.Valid {
		return stay(cmd.WithSlide(ScanRightSlidePower))
	}
	return move(cmd, domain.CenteringFromRight)
}

// centeringFromRight nudges the slide right for a single tick.
func centeringFromRight(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("centering from right")
	if in.Elapsed() < in.Run.ScanDuration {
		cmd = cmd.WithSlide(ScanRightSlidePower)
	}
	return move(cmd, domain.Picking)
}

// picking prefers the left side, then the right, and falls back to the
// right when neither guess matched the target.
func picking(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("picking")
	target := in.Config.Target
	switch {
	case in.Run.LeftGuess.Is(target):
		return move(cmd, domain.GoLeft)
	case in.Run.RightGuess.Is(target):
		return move(cmd, domain.GoRight)
	default:
		return move(cmd, domain.GoRight)
	}
}

func slideTo(activity string, power float64) Policy {
	return func(in Input) (domain.Commands, domain.State, bool) {
		cmd := doing(activity)
		if in.Elapsed() < ClickerSlideTime {
			return stay(cmd.WithSlide(power))
		}
		return move(cmd, domain.Clicking)
	}
}

func clicking(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("clicking")
	if in.Elapsed() < ClickingTime {
		return stay(cmd.WithDrive(domain.Forward(MotorPower)))
	}
	return move(cmd, domain.Backing)
}

// backing never reverses before BackingSafetyGate of absolute run time.
func backing(in Input) (domain.Commands, domain.State, bool) {
	cmd := doing("backing")
	if in.Now() < BackingSafetyGate {
		return stay(cmd)
	}
	cmd = cmd.WithDrive(domain.Backward(MotorPower))
	if in.Elapsed() >= BackingUpTime {
		return move(cmd, domain.Done)
	}
	return stay(cmd)
}

func done(Input) (domain.Commands, domain.State, bool) {
	return stay(doing("done").WithDrive(domain.Stop()))
}
