package runtime

import "time"

// Drive powers.
const (
	MotorPower     = 0.2
	SlowMotorPower = 0.1
	SlowTurnPower  = 0.2
)

// Slide powers while scanning and when moving the clicker.
const (
	ScanLeftSlidePower  = -1.0
	ScanRightSlidePower = 1.0
)

// Flywheel ramp profile.
const (
	RampUpStageOnePower   = 0.4
	RampUpStageTwoPower   = 0.7
	ShootingPower         = 1.0
	RampDownStageOnePower = 0.5
	RampDownStageTwoPower = 0.2
)

// Guard servo positions.
const (
	GuardOpen    = 0.0
	GuardNeutral = 0.5
)

// State dwell times.
const (
	RampTime          = 600 * time.Millisecond
	ShootingTime      = 2 * time.Second
	TimeTowardsBall   = 2750 * time.Millisecond
	TimeFromBall      = time.Second
	FirstTurningTime  = 1200 * time.Millisecond
	TimeStopped       = time.Second
	MovingTimeout     = 3 * time.Second
	ScanTime          = time.Second
	ClickerSlideTime  = 400 * time.Millisecond
	ClickingTime      = time.Second
	BackingUpTime     = time.Second
	BackingSafetyGate = 10 * time.Second
)

// Sensor thresholds.
const (
	OnWhiteThreshold  = 3
	OffWhiteThreshold = 1
	DistanceMinimum   = 10

	// ColorRatio is how dominant one channel must be over the other.
	ColorRatio = 2.0
)
