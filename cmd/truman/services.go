package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/truman/internal/config"
	httpAdapter "github.com/aretw0/truman/pkg/adapters/http"
	redisAdapter "github.com/aretw0/truman/pkg/adapters/redis"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/aretw0/truman/pkg/observability"
	"github.com/aretw0/truman/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// newPublisher returns nil when no Redis address is configured.
func newPublisher(s config.Settings, logger *slog.Logger) *redisAdapter.Publisher {
	if s.Telemetry.Redis == "" {
		return nil
	}
	return redisAdapter.New(s.Telemetry.Redis, s.Telemetry.Password, s.Telemetry.DB,
		redisAdapter.WithPrefix(s.Telemetry.Prefix),
		redisAdapter.WithTTL(s.Telemetry.TTL),
		redisAdapter.WithLogger(logger),
	)
}

// startPublisher flushes p in the background until ctx is done. The returned
// function waits for the final flush and closes the client.
func startPublisher(ctx context.Context, p *redisAdapter.Publisher, interval time.Duration) func() {
	if p == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Run(ctx, interval)
	}()
	return func() {
		<-done
		_ = p.Close()
	}
}

// observers bundles the hooks every long-running command installs.
type observers struct {
	registry *prometheus.Registry
	metrics  *observability.Metrics
	server   *httpAdapter.Server
}

func newObservers(logger *slog.Logger) (*observers, error) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &observers{
		registry: reg,
		metrics:  metrics,
		server:   httpAdapter.NewServer(nil, nil, reg, logger),
	}, nil
}

func (o *observers) hooks(logger *slog.Logger, verbose bool) domain.LifecycleHooks {
	return o.metrics.Hooks().
		Merge(observability.LoggingHooks(logger, verbose)).
		Merge(o.server.Streams.Hooks())
}

// serveDashboard listens on addr until ctx is done, then shuts down
// gracefully. Listener errors are sent on the returned channel.
func serveDashboard(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) <-chan error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)

	go func() {
		logger.Info("dashboard listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			_ = srv.Close()
		}
	}()
	return errs
}

// sink keeps a nil publisher from becoming a non-nil interface.
func sink(p *redisAdapter.Publisher) ports.Telemetry {
	if p == nil {
		return nil
	}
	return p
}
