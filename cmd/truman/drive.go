package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/truman"
	"github.com/aretw0/truman/pkg/adapters/serial"
	"github.com/aretw0/truman/pkg/runner"
	"github.com/aretw0/truman/pkg/telemetry"
	"github.com/spf13/cobra"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Run the autonomous period on a robot over a serial link",
	Long: `Opens the serial bridge to the robot's microcontroller and runs the
controller in real time until Done, the time limit or a signal.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings(cmd)
		exitOnError("loading config", err)
		logger, err := newLogger(settings)
		exitOnError("creating logger", err)

		flags := cmd.Flags()
		if port, _ := flags.GetString("port"); port != "" {
			settings.Serial.Port = port
		}
		if settings.Serial.Port == "" {
			exitOnError("opening serial port", errors.New("no port given (use --port or serial.port)"))
		}
		limit, _ := flags.GetDuration("limit")
		dashboard, _ := flags.GetString("dashboard")
		verbose, _ := flags.GetBool("verbose")

		bridge, err := serial.Open(settings.Serial.Port, settings.Serial.PortOptions, serial.WithLogger(logger))
		exitOnError("opening serial port", err)
		defer bridge.Close()

		obs, err := newObservers(logger)
		exitOnError("registering metrics", err)
		publisher := newPublisher(settings, logger)
		recorder := telemetry.NewRecorder()

		ctrl, err := truman.New(settings.Autonomous, bridge.Hardware(telemetry.Tee(recorder, sink(publisher))),
			truman.WithLogger(logger),
			truman.WithLifecycleHooks(obs.hooks(logger, verbose)),
		)
		exitOnError("initializing controller", err)
		obs.server.Controller = ctrl
		obs.server.Telemetry = recorder

		signals := runner.NewSignalManager(context.Background())
		defer signals.Stop()
		ctx, cancel := context.WithCancel(signals.Context())
		defer cancel()

		monitored := make(chan struct{})
		go func() {
			defer close(monitored)
			if err := bridge.Monitor(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("serial link lost", "err", err)
			}
			cancel()
		}()
		flushed := startPublisher(ctx, publisher, settings.Telemetry.FlushInterval)
		if dashboard != "" {
			serverErrors := serveDashboard(ctx, dashboard, obs.server.Handler(), logger)
			go func() {
				if err, ok := <-serverErrors; ok {
					logger.Error("dashboard failed", "err", err)
				}
			}()
		}

		r := runner.NewRunner(ctrl,
			runner.WithPeriod(settings.Tick.Period),
			runner.WithTimeLimit(limit),
			runner.WithStopWhenDone(true),
			runner.WithLogger(logger),
		)
		res, err := r.Run(ctx)
		cancel()
		<-monitored
		flushed()
		exitOnError("running", err)

		lines, malformed := bridge.Stats()
		fmt.Printf("%s after %d ticks (%s), %d serial lines, %d malformed\n",
			res.State, res.Ticks, res.Elapsed, lines, malformed)
		if !res.State.Terminal() {
			_ = bridge.Close()
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(driveCmd)
	addAutonomousFlags(driveCmd.Flags())
	driveCmd.Flags().StringP("port", "p", "", "Serial device (overrides serial.port)")
	driveCmd.Flags().Duration("limit", 0, "Stop after this much run time (0 means no limit)")
	driveCmd.Flags().String("dashboard", "", "Serve the dashboard on this address while driving")
	driveCmd.Flags().BoolP("verbose", "v", false, "Log every tick")
}
