package ports

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTelemetryContract runs a suite of tests to verify that a Telemetry sink
// adheres to the defined interface contract. snapshot returns what the sink
// has observed so far; sinks that publish asynchronously flush inside it.
func RunTelemetryContract(t *testing.T, sink Telemetry, snapshot func() map[string]any) {
	t.Run("Latest value wins", func(t *testing.T) {
		sink.Report("doing", "searching")
		sink.Report("doing", "stopped")

		snap := snapshot()
		require.Contains(t, snap, "doing")
		assert.Equal(t, "stopped", snap["doing"])
	})

	t.Run("Keys are independent", func(t *testing.T) {
		sink.Report("time", 1.5)
		sink.Report("optical distance", 12)

		snap := snapshot()
		assert.Contains(t, snap, "time")
		assert.Contains(t, snap, "optical distance")
		assert.Equal(t, "stopped", snap["doing"], "earlier keys survive later reports")
	})

	t.Run("Concurrent reports do not panic", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sink.Report("worker", i)
			}(i)
		}
		wg.Wait()
		assert.Contains(t, snapshot(), "worker")
	})
}
