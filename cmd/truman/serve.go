package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/truman"
	"github.com/aretw0/truman/internal/sim"
	"github.com/aretw0/truman/pkg/runner"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [scenario.yaml]",
	Short: "Run a scenario in real time behind the dashboard",
	Long: `Plays a field scenario against the in-memory robot at wall-clock speed
while serving the HTTP dashboard (state, telemetry, graph, events, metrics).
The server keeps running after the run ends until it receives a signal.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings(cmd)
		exitOnError("loading config", err)
		logger, err := newLogger(settings)
		exitOnError("creating logger", err)
		s, err := loadScenario(cmd, args, settings.Autonomous)
		exitOnError("loading scenario", err)

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			settings.HTTP.Addr = addr
		}
		verbose, _ := cmd.Flags().GetBool("verbose")

		obs, err := newObservers(logger)
		exitOnError("registering metrics", err)
		publisher := newPublisher(settings, logger)

		field, err := sim.New(s, sink(publisher),
			truman.WithLogger(logger),
			truman.WithLifecycleHooks(obs.hooks(logger, verbose)),
		)
		exitOnError("initializing controller", err)
		obs.server.Controller = field.Controller()
		obs.server.Telemetry = field.Robot().Telemetry

		signals := runner.NewSignalManager(context.Background())
		defer signals.Stop()
		ctx := signals.Context()

		flushed := startPublisher(ctx, publisher, settings.Telemetry.FlushInterval)
		serverErrors := serveDashboard(ctx, settings.HTTP.Addr, obs.server.Handler(), logger)

		go func() {
			r := runner.NewRunner(field,
				runner.WithPeriod(s.Tick),
				runner.WithTimeLimit(s.Limit),
				runner.WithStopWhenDone(true),
				runner.WithLogger(logger),
			)
			res, _ := r.Run(ctx)
			logger.Info("scenario finished", "scenario", s.Name, "state", res.State, "ticks", res.Ticks)
		}()

		select {
		case err, ok := <-serverErrors:
			if ok {
				fmt.Printf("Server error: %v\n", err)
				os.Exit(1)
			}
		case <-ctx.Done():
			fmt.Println("\nStart shutdown...")
		}
		signals.Stop()
		for range serverErrors {
		}
		flushed()
		fmt.Println("Truman dashboard stopped gracefully")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addAutonomousFlags(serveCmd.Flags())
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides http.addr)")
	serveCmd.Flags().BoolP("verbose", "v", false, "Log every tick")
}
