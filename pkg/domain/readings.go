package domain

import "time"

// Readings is one consistent snapshot of every sensor, taken once per tick
// after the range sensor has been refreshed.
type Readings struct {
	Elapsed time.Duration

	// Brightness is the bottom line sensor's alpha channel.
	Brightness int

	FrontRed   int
	FrontGreen int
	FrontBlue  int
	FrontAlpha int

	Optical    int
	Ultrasonic int
}
