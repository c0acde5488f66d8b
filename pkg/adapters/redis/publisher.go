package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/truman/internal/logging"
	backend "github.com/redis/go-redis/v9"
)

// Publisher implements ports.Telemetry on top of Redis.
//
// Report only buffers in memory, so it is safe to call from the control
// tick. Flush writes the buffered keys into a hash (the latest snapshot)
// and publishes them as one JSON message for live subscribers.
type Publisher struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]any
}

type Option func(*Publisher)

// WithTTL sets the expiration of the snapshot hash. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(p *Publisher) {
		p.ttl = ttl
	}
}

// WithPrefix sets the key prefix for the snapshot hash and channel.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithLogger sets the logger used for background flush failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a publisher with its own client.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		prefix:  "truman:",
		pending: make(map[string]any),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p
}

// SnapshotKey is the hash holding the latest value of every key.
func (p *Publisher) SnapshotKey() string {
	return p.prefix + "telemetry"
}

// Channel is the pub/sub channel each flush is published on.
func (p *Publisher) Channel() string {
	return p.prefix + "telemetry:events"
}

// Report buffers value under key. It never blocks on the network.
func (p *Publisher) Report(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[key] = value
}

func (p *Publisher) drain() map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return nil
	}
	batch := p.pending
	p.pending = make(map[string]any, len(batch))
	return batch
}

// Flush writes everything reported since the last flush. A failed flush
// drops the batch; later reports overwrite the keys anyway.
func (p *Publisher) Flush(ctx context.Context) error {
	batch := p.drain()
	if batch == nil {
		return nil
	}

	fields := make(map[string]any, len(batch))
	for k, v := range batch {
		fields[k] = fmt.Sprint(v)
	}
	msg, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal telemetry: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.HSet(ctx, p.SnapshotKey(), fields)
	if p.ttl > 0 {
		pipe.Expire(ctx, p.SnapshotKey(), p.ttl)
	}
	pipe.Publish(ctx, p.Channel(), msg)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish telemetry: %w", err)
	}
	return nil
}

// Run flushes every interval until ctx is done, then flushes once more.
func (p *Publisher) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
			defer cancel()
			if err := p.Flush(final); err != nil {
				p.logger.Warn("final telemetry flush failed", "err", err)
			}
			return nil
		case <-ticker.C:
			if err := p.Flush(ctx); err != nil {
				p.logger.Warn("telemetry flush failed", "err", err)
			}
		}
	}
}

// Snapshot reads the published snapshot back from Redis.
func (p *Publisher) Snapshot(ctx context.Context) (map[string]string, error) {
	vals, err := p.client.HGetAll(ctx, p.SnapshotKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read telemetry: %w", err)
	}
	return vals, nil
}

// Close releases the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
