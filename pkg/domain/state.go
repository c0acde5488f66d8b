package domain

import (
	"fmt"
	"strings"
)

// State is a control-flow position of the autonomous state machine.
// Exactly one State is current at any time.
type State int

const (
	Begin State = iota
	RampUpShootStageOne
	RampUpShootStageTwo
	ShootingBalls
	RampDownShootStageOne
	RampDownShootStageTwo
	DrivingTowardsBall
	BackingFromBall
	Turning
	Start
	Searching
	Stopped
	MovingBeyond
	MovingTimed
	Orienting
	OrientingFurther
	OrientingBack
	Moving
	ScanningLeft
	CenteringFromLeft
	ScanningRight
	CenteringFromRight
	Picking
	GoLeft
	GoRight
	Clicking
	Backing
	Done

	stateCount
)

var stateNames = [stateCount]string{
	Begin:                 "Begin",
	RampUpShootStageOne:   "RampUpShootStageOne",
	RampUpShootStageTwo:   "RampUpShootStageTwo",
	ShootingBalls:         "ShootingBalls",
	RampDownShootStageOne: "RampDownShootStageOne",
	RampDownShootStageTwo: "RampDownShootStageTwo",
	DrivingTowardsBall:    "DrivingTowardsBall",
	BackingFromBall:       "BackingFromBall",
	Turning:               "Turning",
	Start:                 "Start",
	Searching:             "Searching",
	Stopped:               "Stopped",
	MovingBeyond:          "Moving_Beyond",
	MovingTimed:           "Moving_Timed",
	Orienting:             "Orienting",
	OrientingFurther:      "Orienting_Further",
	OrientingBack:         "Orienting_Back",
	Moving:                "Moving",
	ScanningLeft:          "ScanningLeft",
	CenteringFromLeft:     "CenteringFromLeft",
	ScanningRight:         "ScanningRight",
	CenteringFromRight:    "CenteringFromRight",
	Picking:               "Picking",
	GoLeft:                "GoLeft",
	GoRight:               "GoRight",
	Clicking:              "Clicking",
	Backing:               "Backing",
	Done:                  "Done",
}

// States returns every state in declaration order.
func States() []State {
	out := make([]State, 0, stateCount)
	for s := Begin; s < stateCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a declared state.
func (s State) Valid() bool {
	return s >= Begin && s < stateCount
}

// Terminal reports whether s is the sink state.
func (s State) Terminal() bool {
	return s == Done
}

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState resolves a state name. Matching ignores case and underscores,
// so "Moving_Beyond", "movingbeyond" and "MOVING_BEYOND" are equivalent.
func ParseState(name string) (State, error) {
	want := normalizeStateName(name)
	for s := Begin; s < stateCount; s++ {
		if normalizeStateName(stateNames[s]) == want {
			return s, nil
		}
	}
	return Begin, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

func normalizeStateName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
