// Package telemetry provides in-process telemetry sinks: a concurrent-safe
// Recorder holding the latest value per key, and Tee for fanning reports out
// to several sinks.
package telemetry
