// Package sim runs the controller against scripted YAML fields, either on a
// virtual clock for traces and tests or in real time behind pkg/runner.
package sim
