/*
Package ports defines the driven ports (interfaces) of the Truman controller.

These interfaces decouple the state machine from the robot's hardware
abstraction, the range-sensor wrapper and the telemetry sink, so the same
core runs against a serial bridge, a simulator or test fakes.

# Key Interfaces

  - Drivetrain, Motor, ContinuousServo, Servo: actuator power and position setters.
  - LineSensor, ColorSensor, RangeSensor: single-sample sensor readers.
  - Telemetry: best-effort key/value status sink.
  - Controller: the tick-driven surface a host scheduler drives.
*/
package ports
