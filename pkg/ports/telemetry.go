package ports

// Telemetry is a best-effort, fire-and-forget status sink.
// Report must not block and never affects control flow.
type Telemetry interface {
	Report(key string, value any)
}

// TelemetrySource exposes the latest value reported under each key.
// Implementations are safe for concurrent use.
type TelemetrySource interface {
	Snapshot() map[string]any
}
