package domain

// Telemetry keys reported once per tick.
const (
	KeyDoing      = "doing"
	KeyState      = "state"
	KeyColor      = "color"
	KeyOptical    = "optical distance"
	KeyUltrasonic = "range distance"
	KeyEnteredAt  = "time_at_start"
	KeyElapsed    = "time"
	KeyRunID      = "run_id"
	KeyLeftGuess  = "left_guess"
	KeyRightGuess = "right_guess"
)
