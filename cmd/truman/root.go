package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/truman/internal/config"
	"github.com/aretw0/truman/internal/logging"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "truman",
	Short: "Truman runs the autonomous period of an FTC robot",
	Long: `Truman is a tick-driven autonomous controller: it follows the white line,
reads both beacon halves and presses the one matching the alliance color.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Settings file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// addAutonomousFlags registers the flags that override the autonomous section.
func addAutonomousFlags(flags *pflag.FlagSet) {
	flags.String("turn", "", "Side the robot turns towards: left or right")
	flags.String("target", "", "Alliance color to press: red or blue")
	flags.Duration("start-delay", 0, "Absolute time to wait in Start before turning")
	flags.String("opening", "", "State entered from Begin, e.g. RampUpShootStageOne")
}

// loadSettings reads --config and applies the flags the user set.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	s, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if level, _ := flags.GetString("log-level"); level != "" {
		s.Log.Level = level
	}
	if flags.Changed("turn") {
		v, _ := flags.GetString("turn")
		if s.Autonomous.Turn, err = domain.ParseTurn(v); err != nil {
			return config.Settings{}, err
		}
	}
	if flags.Changed("target") {
		v, _ := flags.GetString("target")
		if s.Autonomous.Target, err = domain.ParseTargetColor(v); err != nil {
			return config.Settings{}, err
		}
	}
	if flags.Changed("start-delay") {
		s.Autonomous.StartDelay, _ = flags.GetDuration("start-delay")
	}
	if flags.Changed("opening") {
		v, _ := flags.GetString("opening")
		if s.Autonomous.Opening, err = domain.ParseState(v); err != nil {
			return config.Settings{}, err
		}
	}
	return s, s.Validate()
}

func newLogger(s config.Settings) (*slog.Logger, error) {
	level, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// exitOnError prints err and exits when it is non-nil.
func exitOnError(what string, err error) {
	if err != nil {
		fmt.Printf("Error %s: %v\n", what, err)
		os.Exit(1)
	}
}
