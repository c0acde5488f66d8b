package telemetry

import "github.com/aretw0/truman/pkg/ports"

type tee []ports.Telemetry

func (t tee) Report(key string, value any) {
	for _, s := range t {
		s.Report(key, value)
	}
}

// Tee returns a sink that forwards every report to each non-nil sink, in order.
func Tee(sinks ...ports.Telemetry) ports.Telemetry {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type discard struct{}

func (discard) Report(string, any) {}

// Discard drops every report.
var Discard ports.Telemetry = discard{}
