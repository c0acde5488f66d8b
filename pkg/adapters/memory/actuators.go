package memory

import (
	"sync"

	"github.com/aretw0/truman/pkg/domain"
)

// Drivetrain implements ports.Drivetrain and remembers the latest power of
// each wheel. Safe for concurrent use.
type Drivetrain struct {
	mu     sync.RWMutex
	power  domain.DrivePower
	writes int
}

func (d *Drivetrain) set(field *float64, p float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	*field = p
	d.writes++
}

func (d *Drivetrain) SetFrontRightPower(p float64) { d.set(&d.power.FrontRight, p) }
func (d *Drivetrain) SetFrontLeftPower(p float64)  { d.set(&d.power.FrontLeft, p) }
func (d *Drivetrain) SetBackRightPower(p float64)  { d.set(&d.power.BackRight, p) }
func (d *Drivetrain) SetBackLeftPower(p float64)   { d.set(&d.power.BackLeft, p) }

// Power returns the latest power of every wheel.
func (d *Drivetrain) Power() domain.DrivePower {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.power
}

// Writes is the number of individual wheel writes so far.
func (d *Drivetrain) Writes() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.writes
}

// Actuator implements ports.Motor, ports.ContinuousServo and ports.Servo.
// It records every value written. Safe for concurrent use.
type Actuator struct {
	mu      sync.RWMutex
	history []float64
}

// SetPower records a power write.
func (a *Actuator) SetPower(p float64) { a.record(p) }

// SetPosition records a position write.
func (a *Actuator) SetPosition(pos float64) { a.record(pos) }

func (a *Actuator) record(v float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, v)
}

// Value returns the latest written value; ok is false if nothing was written.
func (a *Actuator) Value() (v float64, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.history) == 0 {
		return 0, false
	}
	return a.history[len(a.history)-1], true
}

// History returns a copy of every written value, oldest first.
func (a *Actuator) History() []float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]float64(nil), a.history...)
}
