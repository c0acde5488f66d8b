/*
Package domain contains the core domain models of the Truman autonomous controller.

It defines the fundamental entities of the state machine: the control-flow
States, the per-run scratch RunContext, the immutable Config chosen at
construction, the per-tick sensor Readings and the actuator Commands each
state policy emits. This package is kept pure and free of hardware or I/O
concerns; adapters live under pkg/adapters.

# Key Entities

  - State: A control-flow position of the machine (Begin ... Done).
  - RunContext: Mutable per-run scratch (entry timestamp, scan timing, color guesses).
  - Config: Turn side, target color and start delay supplied by the host.
  - Readings: One consistent snapshot of every sensor for a single tick.
  - Commands: What each actuator group must be set to for this tick.
*/
package domain
