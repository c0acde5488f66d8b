/*
Package runner is the host scheduler of the controller.

It starts a run, calls OnTick at a fixed period with the monotonic time
elapsed since the start, and stops on context cancellation, OS signals, an
optional time limit or, when asked to, once the controller has settled in
Done.

# Usage

	r := runner.NewRunner(ctrl,
		runner.WithPeriod(20*time.Millisecond),
		runner.WithStopWhenDone(true),
	)

	res, err := r.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("stopped in %s after %d ticks", res.State, res.Ticks)
*/
package runner
