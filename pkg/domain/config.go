package domain

import (
	"fmt"
	"strings"
	"time"
)

// Turn selects which side the robot favors when orienting and turning.
type Turn int

const (
	TurnRight Turn = iota
	TurnLeft
)

func (t Turn) String() string {
	switch t {
	case TurnRight:
		return "right"
	case TurnLeft:
		return "left"
	default:
		return fmt.Sprintf("Turn(%d)", int(t))
	}
}

// ParseTurn accepts "left"/"l" and "right"/"r", case-insensitively.
func ParseTurn(s string) (Turn, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r":
		return TurnRight, nil
	case "left", "l":
		return TurnLeft, nil
	}
	return TurnRight, fmt.Errorf("%w: %q", ErrUnknownTurn, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Turn) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Turn) UnmarshalText(text []byte) error {
	parsed, err := ParseTurn(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TargetColor is the color the robot must pick at the end of the run.
type TargetColor int

const (
	Red TargetColor = iota
	Blue
)

func (c TargetColor) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("TargetColor(%d)", int(c))
	}
}

// ParseTargetColor accepts "red" and "blue", case-insensitively.
func ParseTargetColor(s string) (TargetColor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	}
	return Red, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c TargetColor) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *TargetColor) UnmarshalText(text []byte) error {
	parsed, err := ParseTargetColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Config holds the construction-time parameters of a run.
// It is read-only once the controller is built.
type Config struct {
	Turn       Turn          `json:"turn" yaml:"turn" mapstructure:"turn"`
	Target     TargetColor   `json:"target" yaml:"target" mapstructure:"target"`
	StartDelay time.Duration `json:"start_delay" yaml:"start_delay" mapstructure:"start_delay"`

	// Opening is the state Begin hands over to. Zero value (Begin) means Searching.
	Opening State `json:"opening,omitempty" yaml:"opening,omitempty" mapstructure:"opening"`
}

// DefaultConfig is the configuration of the observed competition run.
func DefaultConfig() Config {
	return Config{Turn: TurnRight, Target: Red, Opening: Searching}
}

// OpeningState resolves Opening, substituting Searching for the zero value.
func (c Config) OpeningState() State {
	if c.Opening == Begin {
		return Searching
	}
	return c.Opening
}

// Validate checks enum ranges and the start delay.
func (c Config) Validate() error {
	if c.Turn != TurnLeft && c.Turn != TurnRight {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Turn)
	}
	if c.Target != Red && c.Target != Blue {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Target)
	}
	if c.StartDelay < 0 {
		return fmt.Errorf("%w: negative start delay %s", ErrInvalidConfig, c.StartDelay)
	}
	if !c.Opening.Valid() {
		return fmt.Errorf("%w: opening %v", ErrInvalidConfig, c.Opening)
	}
	return nil
}
