/*
Package observability turns controller lifecycle hooks into Prometheus
metrics and structured log lines.

Both adapters return domain.LifecycleHooks, so they compose with Merge and
are installed with truman.WithLifecycleHooks.
*/
package observability
