// Package redis publishes controller telemetry to Redis: a hash with the
// latest value of every key plus a pub/sub message per flush.
package redis
