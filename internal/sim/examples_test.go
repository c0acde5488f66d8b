package sim_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/truman/internal/sim"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulateFile(t *testing.T, name string) *sim.Trace {
	t.Helper()
	s, err := sim.Load(filepath.Join("..", "..", "examples", "scenarios", name))
	require.NoError(t, err)
	tr, err := sim.Simulate(s)
	require.NoError(t, err)
	require.True(t, tr.Completed(), "stopped in %s", tr.Final)
	return tr
}

func TestExampleScenarios_Complete(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			tr := simulateFile(t, filepath.Base(f))
			assert.GreaterOrEqual(t, tr.Elapsed, 10*time.Second)
			assert.True(t, tr.Drive.Stopped())
		})
	}
}

func TestExampleScenarios_ShootFirst(t *testing.T) {
	tr := simulateFile(t, "shoot-first.yaml")
	visited := tr.Visited()
	assert.Equal(t, []domain.State{
		domain.Begin,
		domain.RampUpShootStageOne,
		domain.RampUpShootStageTwo,
		domain.ShootingBalls,
		domain.RampDownShootStageOne,
		domain.RampDownShootStageTwo,
		domain.Start,
		domain.Turning,
		domain.Searching,
	}, visited[:9])
	assert.Equal(t, domain.GoLeft, visited[len(visited)-4])
}

func TestExampleScenarios_BlueLeft(t *testing.T) {
	tr := simulateFile(t, "blue-left.yaml")
	assert.Equal(t, domain.Known(domain.Blue), tr.Run.LeftGuess)
	assert.Equal(t, domain.Known(domain.Red), tr.Run.RightGuess)
	assert.Contains(t, tr.Visited(), domain.GoLeft)

	// Start holds until the absolute start delay.
	require.GreaterOrEqual(t, len(tr.Steps), 2)
	assert.Equal(t, domain.Start, tr.Steps[1].From)
	assert.GreaterOrEqual(t, tr.Steps[1].At, 3*time.Second)
}

func TestExampleScenarios_LostBeacon(t *testing.T) {
	tr := simulateFile(t, "lost-beacon.yaml")
	assert.False(t, tr.Run.LeftGuess.Valid)
	assert.False(t, tr.Run.RightGuess.Valid)
	assert.NotContains(t, tr.Visited(), domain.ScanningLeft)

	last := tr.Steps[len(tr.Steps)-1]
	assert.Equal(t, domain.Backing, last.From)
	assert.Equal(t, 10*time.Second, last.At)
}
