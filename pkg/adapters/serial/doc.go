/*
Package serial bridges the controller to a motor and sensor
microcontroller over a serial line.

The device speaks a newline-terminated text protocol. The host sends
actuator writes and range refresh requests:

	M FR 0.200    drive wheel power (FR, FL, BR, BL)
	F L 0.400     flywheel power (L, R)
	S -1.000      slide power
	G 0.500       guard position
	A 0.000       arm position
	R             range refresh request

The device streams sensor samples whenever they change:

	L 3           bottom brightness
	C 10 2 1 7    front red, green, blue, alpha
	D 12 40       optical and ultrasonic range

Actuator writes are queued and written by Monitor's writer goroutine, so a
tick never waits on the line.
*/
package serial
