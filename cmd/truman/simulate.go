package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/truman"
	"github.com/aretw0/truman/internal/presentation/tui"
	"github.com/aretw0/truman/internal/sim"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario.yaml]",
	Short: "Run a scenario against the in-memory robot",
	Long: `Plays a field scenario to the controller on a virtual clock and prints
every transition. Without an argument the built-in scenario is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings(cmd)
		exitOnError("loading config", err)
		s, err := loadScenario(cmd, args, settings.Autonomous)
		exitOnError("loading scenario", err)
		logger, err := newLogger(settings)
		exitOnError("creating logger", err)

		trace, err := sim.Simulate(s, truman.WithLogger(logger))
		exitOnError("simulating", err)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			exitOnError("encoding trace", enc.Encode(trace))
			return
		}
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}
		exitOnError("rendering trace", tui.WriteMarkdown(os.Stdout, trace.Markdown()))
		if !trace.Completed() {
			os.Exit(2)
		}
	},
}

// loadScenario reads the scenario argument and applies the autonomous flags
// on top of the scenario's own configuration. overrides already carries the
// parsed flag values.
func loadScenario(cmd *cobra.Command, args []string, overrides domain.Config) (*sim.Scenario, error) {
	s := sim.Default()
	if len(args) > 0 {
		var err error
		if s, err = sim.Load(args[0]); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("turn") {
		s.Config.Turn = overrides.Turn
	}
	if flags.Changed("target") {
		s.Config.Target = overrides.Target
	}
	if flags.Changed("start-delay") {
		s.Config.StartDelay = overrides.StartDelay
	}
	if flags.Changed("opening") {
		s.Config.Opening = overrides.Opening
	}
	return s, s.Config.Validate()
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	addAutonomousFlags(simulateCmd.Flags())
	simulateCmd.Flags().Bool("json", false, "Print the trace as JSON")
}
