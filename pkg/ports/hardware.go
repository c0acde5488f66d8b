package ports

import (
	"fmt"

	"github.com/aretw0/truman/pkg/domain"
)

// Drivetrain sets the power of each wheel, in [-1, 1].
// "Forward" is all four wheels at equal positive power.
type Drivetrain interface {
	SetFrontRightPower(p float64)
	SetFrontLeftPower(p float64)
	SetBackRightPower(p float64)
	SetBackLeftPower(p float64)
}

// Motor is a single power setter (flywheels use [0, 1]).
type Motor interface {
	SetPower(p float64)
}

// ContinuousServo is a continuous-rotation servo driven by power in [-1, 1].
type ContinuousServo interface {
	SetPower(p float64)
}

// Servo is a positional servo, position in [0, 1].
type Servo interface {
	SetPosition(pos float64)
}

// LineSensor is the downward-facing brightness sensor.
type LineSensor interface {
	Brightness() int
}

// ColorSensor is the forward color sensor.
type ColorSensor interface {
	Red() int
	Green() int
	Blue() int
	Alpha() int
}

// RangeSensor wraps a polled range sensor. Refresh must be called once per
// tick before Optical or Ultrasonic are read.
type RangeSensor interface {
	Refresh()
	Optical() int
	Ultrasonic() int
}

// Hardware bundles every handle the controller drives.
// Arm is optional; every other field is required.
type Hardware struct {
	Drive         Drivetrain
	FlywheelLeft  Motor
	FlywheelRight Motor
	Slide         ContinuousServo
	Guard         Servo
	Arm           Servo

	Bottom LineSensor
	Front  ColorSensor
	Range  RangeSensor

	Telemetry Telemetry
}

// Validate reports the first missing required handle.
func (h Hardware) Validate() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"drive", h.Drive != nil},
		{"flywheel left", h.FlywheelLeft != nil},
		{"flywheel right", h.FlywheelRight != nil},
		{"slide", h.Slide != nil},
		{"guard", h.Guard != nil},
		{"bottom sensor", h.Bottom != nil},
		{"front sensor", h.Front != nil},
		{"range sensor", h.Range != nil},
		{"telemetry", h.Telemetry != nil},
	}
	for _, r := range required {
		if !r.ok {
			return fmt.Errorf("%w: %s", domain.ErrMissingHardware, r.name)
		}
	}
	return nil
}

// ApplyDrive writes every wheel of d to the drivetrain.
func ApplyDrive(dt Drivetrain, d domain.DrivePower) {
	dt.SetFrontRightPower(d.FrontRight)
	dt.SetFrontLeftPower(d.FrontLeft)
	dt.SetBackRightPower(d.BackRight)
	dt.SetBackLeftPower(d.BackLeft)
}
