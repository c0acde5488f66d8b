package ports

import (
	"time"

	"github.com/aretw0/truman/pkg/domain"
)

// Controller is the tick-driven surface a host scheduler drives.
// OnTick must return promptly and never block.
type Controller interface {
	OnStart()
	OnTick(elapsed time.Duration)
	State() domain.State
}
