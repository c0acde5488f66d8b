package domain

import "errors"

// ErrUnknownTurn is returned when a turn side cannot be parsed.
var ErrUnknownTurn = errors.New("unknown turn side")

// ErrUnknownColor is returned when a target color cannot be parsed.
var ErrUnknownColor = errors.New("unknown target color")

// ErrUnknownState is returned when a state name cannot be parsed.
var ErrUnknownState = errors.New("unknown state")

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrMissingHardware is returned when a required hardware handle is nil.
var ErrMissingHardware = errors.New("missing hardware handle")
