package memory

import (
	"github.com/aretw0/truman/pkg/ports"
	"github.com/aretw0/truman/pkg/telemetry"
)

// Robot is a complete in-memory robot whose sensors all start at zero.
type Robot struct {
	Drive         *Drivetrain
	FlywheelLeft  *Actuator
	FlywheelRight *Actuator
	Slide         *Actuator
	Guard         *Actuator
	Arm           *Actuator

	Bottom *LineSensor
	Front  *ColorSensor
	Range  *RangeSensor

	Telemetry *telemetry.Recorder
}

// NewRobot builds a robot with empty sensor scripts.
func NewRobot() *Robot {
	return &Robot{
		Drive:         &Drivetrain{},
		FlywheelLeft:  &Actuator{},
		FlywheelRight: &Actuator{},
		Slide:         &Actuator{},
		Guard:         &Actuator{},
		Arm:           &Actuator{},
		Bottom:        &LineSensor{Values: NewSequence()},
		Front: &ColorSensor{
			R: NewSequence(),
			G: NewSequence(),
			B: NewSequence(),
			A: NewSequence(),
		},
		Range: &RangeSensor{
			OpticalValues:    NewSequence(),
			UltrasonicValues: NewSequence(),
		},
		Telemetry: telemetry.NewRecorder(),
	}
}

// Hardware exposes the robot through the controller's ports. A non-nil sink
// replaces the robot's own recorder as the telemetry destination.
func (r *Robot) Hardware(sink ports.Telemetry) ports.Hardware {
	if sink == nil {
		sink = r.Telemetry
	}
	return ports.Hardware{
		Drive:         r.Drive,
		FlywheelLeft:  r.FlywheelLeft,
		FlywheelRight: r.FlywheelRight,
		Slide:         r.Slide,
		Guard:         r.Guard,
		Arm:           r.Arm,
		Bottom:        r.Bottom,
		Front:         r.Front,
		Range:         r.Range,
		Telemetry:     sink,
	}
}
