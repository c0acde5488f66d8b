package domain

import "time"

// Guess is an optional color classification for one side of the scan.
// The zero value is the unset guess.
type Guess struct {
	Color TargetColor `json:"color"`
	Valid bool        `json:"valid"`
}

// Known builds a set guess.
func Known(c TargetColor) Guess {
	return Guess{Color: c, Valid: true}
}

// Is reports whether the guess is set and equals c.
func (g Guess) Is(c TargetColor) bool {
	return g.Valid && g.Color == c
}

func (g Guess) String() string {
	if !g.Valid {
		return "none"
	}
	return g.Color.String()
}

// RunContext is the mutable scratch of a single run.
//
// EnteredAt never decreases within a run and is refreshed on every
// transition. Guesses are written at most once per run.
type RunContext struct {
	RunID string `json:"run_id"`
	State State  `json:"state"`

	// EnteredAt is the elapsed time at which State became current.
	EnteredAt time.Duration `json:"entered_at"`

	// TimeToMove is the time spent crossing the line (Moving_Beyond) or
	// turning off it (Orienting_Further).
	TimeToMove time.Duration `json:"time_to_move"`

	// ScanDuration is the time spent scanning left, mirrored by the
	// centering and right-hand scan.
	ScanDuration time.Duration `json:"scan_duration"`

	LeftGuess  Guess `json:"left_guess"`
	RightGuess Guess `json:"right_guess"`

	Ticks uint64 `json:"ticks"`
}

// NewRunContext returns a fresh context positioned at Begin.
func NewRunContext(runID string) *RunContext {
	return &RunContext{RunID: runID, State: Begin}
}

// Since returns the state-relative elapsed time at now, clamped at zero.
func (rc *RunContext) Since(now time.Duration) time.Duration {
	if now < rc.EnteredAt {
		return 0
	}
	return now - rc.EnteredAt
}

// Enter makes next the current state at now. A now earlier than the
// current entry timestamp keeps the timestamp where it is.
func (rc *RunContext) Enter(next State, now time.Duration) {
	rc.State = next
	if now > rc.EnteredAt {
		rc.EnteredAt = now
	}
}

// RecordLeft stores g as the left guess unless one is already set.
func (rc *RunContext) RecordLeft(g Guess) {
	if !rc.LeftGuess.Valid {
		rc.LeftGuess = g
	}
}

// RecordRight stores g as the right guess unless one is already set.
func (rc *RunContext) RecordRight(g Guess) {
	if !rc.RightGuess.Valid {
		rc.RightGuess = g
	}
}
