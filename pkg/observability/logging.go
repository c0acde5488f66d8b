package observability

import (
	"log/slog"

	"github.com/aretw0/truman/pkg/domain"
)

// LoggingHooks logs run starts and transitions at Info. Ticks are logged at
// Debug only when verbose is set.
func LoggingHooks(logger *slog.Logger, verbose bool) domain.LifecycleHooks {
	hooks := domain.LifecycleHooks{
		OnRunStart: func(e *domain.RunEvent) {
			logger.Info("run_start",
				"run_id", e.RunID,
				"turn", e.Config.Turn,
				"target", e.Config.Target,
				"start_delay", e.Config.StartDelay,
			)
		},
		OnStateLeave: func(e *domain.StateEvent) {
			logger.Info("state_leave",
				"run_id", e.RunID,
				"state", e.State,
				"next", e.Peer,
				"dwell", e.Dwell,
			)
		},
		OnStateEnter: func(e *domain.StateEvent) {
			logger.Info("state_enter",
				"run_id", e.RunID,
				"state", e.State,
				"elapsed", e.Elapsed,
			)
		},
	}
	if verbose {
		hooks.OnTick = func(e *domain.TickEvent) {
			logger.Debug("tick",
				"run_id", e.RunID,
				"state", e.State,
				"doing", e.Commands.Activity,
				"elapsed", e.Elapsed,
				"brightness", e.Readings.Brightness,
				"optical", e.Readings.Optical,
			)
		}
	}
	return hooks
}
