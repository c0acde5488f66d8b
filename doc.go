/*
Package truman is the autonomous controller of a wheeled competition robot.

A single finite-state machine drives the robot through a scripted run:
an optional shooting and ball-pushing prelude, a turn towards the field,
line search and orientation, a lateral color scan of the beacon, a press of
the matching side and a timed retreat. Time, a downward line sensor, a
forward color sensor and a range sensor are the only feedback.

# Concept

The Controller is tick-driven. A host scheduler calls OnStart once per run
and then OnTick repeatedly with the monotonic elapsed time of the run. Each
tick samples every sensor once, evaluates exactly one state's policy, writes
the actuators that policy names and reports telemetry. Nothing blocks and
nothing is spawned, so a host may stop ticking at any moment.

Hardware is injected through the interfaces in pkg/ports, which lets the
same controller run against a serial bridge, the simulator or test fakes.

# Usage

	robot := memory.NewRobot()
	ctrl, err := truman.New(domain.DefaultConfig(), robot.Hardware(nil))
	if err != nil {
		log.Fatal(err)
	}

	ctrl.OnStart()
	for elapsed := time.Duration(0); ctrl.State() != domain.Done; elapsed += 20 * time.Millisecond {
		ctrl.OnTick(elapsed)
	}

For a real-time loop with signal handling see pkg/runner.
*/
package truman
