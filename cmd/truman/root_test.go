package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/truman/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("log-level", "", "")
	addAutonomousFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := loadSettings(newTestCmd(t))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), s.Autonomous)
	assert.Equal(t, "info", s.Log.Level)
}

func TestLoadSettings_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truman.yaml")
	require.NoError(t, os.WriteFile(path, []byte("autonomous:\n  turn: left\n  start_delay: 2s\nlog:\n  level: warn\n"), 0o644))

	s, err := loadSettings(newTestCmd(t,
		"--config", path,
		"--target", "blue",
		"--opening", "ramp_up_shoot_stage_one",
		"--log-level", "debug",
	))
	require.NoError(t, err)
	assert.Equal(t, domain.TurnLeft, s.Autonomous.Turn)
	assert.Equal(t, domain.Blue, s.Autonomous.Target)
	assert.Equal(t, 2*time.Second, s.Autonomous.StartDelay)
	assert.Equal(t, domain.RampUpShootStageOne, s.Autonomous.Opening)
	assert.Equal(t, "debug", s.Log.Level)
}

func TestLoadSettings_RejectsBadFlags(t *testing.T) {
	_, err := loadSettings(newTestCmd(t, "--turn", "up"))
	assert.Error(t, err)

	_, err = loadSettings(newTestCmd(t, "--start-delay", "-1s"))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoadScenario_AppliesOnlyChangedFlags(t *testing.T) {
	cmd := newTestCmd(t, "--target", "blue")
	s, err := loadSettings(cmd)
	require.NoError(t, err)

	sc, err := loadScenario(cmd, nil, s.Autonomous)
	require.NoError(t, err)
	assert.Equal(t, domain.Blue, sc.Config.Target)
	assert.Equal(t, domain.TurnRight, sc.Config.Turn)
}
