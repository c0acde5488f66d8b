package domain

// DrivePower holds one power value per drivetrain wheel, in [-1, 1].
// Positive on all four wheels drives forward.
type DrivePower struct {
	FrontRight float64 `json:"front_right"`
	FrontLeft  float64 `json:"front_left"`
	BackRight  float64 `json:"back_right"`
	BackLeft   float64 `json:"back_left"`
}

// Forward drives all wheels at p.
func Forward(p float64) DrivePower {
	return DrivePower{FrontRight: p, FrontLeft: p, BackRight: p, BackLeft: p}
}

// Backward drives all wheels at -p.
func Backward(p float64) DrivePower {
	return Forward(-p)
}

// Stop zeroes every wheel.
func Stop() DrivePower {
	return DrivePower{}
}

// PivotRight spins clockwise: left pair forward, right pair reverse.
func PivotRight(p float64) DrivePower {
	return DrivePower{FrontRight: -p, BackRight: -p, FrontLeft: p, BackLeft: p}
}

// PivotLeft spins counter-clockwise: right pair forward, left pair reverse.
func PivotLeft(p float64) DrivePower {
	return DrivePower{FrontRight: p, BackRight: p, FrontLeft: -p, BackLeft: -p}
}

// Stopped reports whether every wheel is at zero power.
func (d DrivePower) Stopped() bool {
	return d == DrivePower{}
}

// Commands is what a state policy asks the hardware to do this tick.
// A nil group is left untouched, so the actuator keeps its previous value.
type Commands struct {
	// Activity is the human-readable label reported under the "doing" key.
	Activity string

	Drive    *DrivePower
	Flywheel *float64 // both flywheels, [0, 1]
	Slide    *float64 // [-1, 1]
	Guard    *float64 // 0 open, 0.5 neutral
}

// WithDrive sets the drive group.
func (c Commands) WithDrive(d DrivePower) Commands {
	c.Drive = &d
	return c
}

// WithFlywheel sets both flywheels to p.
func (c Commands) WithFlywheel(p float64) Commands {
	c.Flywheel = &p
	return c
}

// WithSlide sets the slide power.
func (c Commands) WithSlide(p float64) Commands {
	c.Slide = &p
	return c
}

// WithGuard sets the guard servo position.
func (c Commands) WithGuard(pos float64) Commands {
	c.Guard = &pos
	return c
}
