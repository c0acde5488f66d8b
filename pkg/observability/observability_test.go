package observability_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/truman/pkg/domain"
	"github.com/aretw0/truman/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leave(from, to domain.State, dwell time.Duration) *domain.StateEvent {
	return &domain.StateEvent{
		EventBase: domain.EventBase{Type: domain.EventStateLeave, RunID: "r"},
		State:     from,
		Peer:      to,
		Dwell:     dwell,
	}
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	hooks := m.Hooks()

	hooks.OnRunStart(&domain.RunEvent{})
	hooks.OnTick(&domain.TickEvent{})
	hooks.OnTick(&domain.TickEvent{})
	hooks.OnStateLeave(leave(domain.Searching, domain.Stopped, 700*time.Millisecond))
	hooks.OnStateEnter(&domain.StateEvent{State: domain.Stopped, Peer: domain.Searching})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("Searching", "Stopped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Current.WithLabelValues("Stopped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Current.WithLabelValues("Begin")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Dwell))
}

func TestMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	quiet := observability.LoggingHooks(logger, false)
	assert.Nil(t, quiet.OnTick)

	hooks := observability.LoggingHooks(logger, true)
	hooks.OnStateLeave(leave(domain.Moving, domain.ScanningLeft, time.Second))
	hooks.OnTick(&domain.TickEvent{State: domain.ScanningLeft, Commands: domain.Commands{Activity: "scanning left"}})

	out := buf.String()
	assert.Contains(t, out, "msg=state_leave")
	assert.Contains(t, out, "state=Moving")
	assert.Contains(t, out, "next=ScanningLeft")
	assert.Contains(t, out, `doing="scanning left"`)
}
