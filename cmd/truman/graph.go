package main

import (
	"fmt"

	"github.com/aretw0/truman/internal/presentation/graph"
	"github.com/aretw0/truman/internal/runtime"
	"github.com/aretw0/truman/internal/sim"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [scenario.yaml]",
	Short: "Visualize the autonomous state machine",
	Long: `Prints the state graph as a Mermaid flowchart. With --trace the
scenario is simulated first and the states it visited are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings(cmd)
		exitOnError("loading config", err)

		cfg := settings.Autonomous
		var overlay *graph.Overlay
		if withTrace, _ := cmd.Flags().GetBool("trace"); withTrace || len(args) > 0 {
			s, err := loadScenario(cmd, args, cfg)
			exitOnError("loading scenario", err)
			trace, err := sim.Simulate(s)
			exitOnError("simulating", err)

			cfg = s.Config
			overlay = &graph.Overlay{
				Visited:    trace.Visited(),
				Current:    trace.Final,
				HasCurrent: true,
			}
		}

		fmt.Println(graph.GenerateMermaid(runtime.Transitions(cfg), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addAutonomousFlags(graphCmd.Flags())
	graphCmd.Flags().Bool("trace", false, "Highlight the path of a simulated run")
}
