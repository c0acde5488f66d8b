package observability

import (
	"github.com/aretw0/truman/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the controller hooks.
type Metrics struct {
	Runs        prometheus.Counter
	Ticks       prometheus.Counter
	Transitions *prometheus.CounterVec
	Dwell       *prometheus.HistogramVec
	Current     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "truman",
			Name:      "runs_total",
			Help:      "Total autonomous runs started",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "truman",
			Name:      "ticks_total",
			Help:      "Total controller ticks",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "truman",
			Name:      "state_transitions_total",
			Help:      "Total state transitions",
		}, []string{"from", "to"}),
		Dwell: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "truman",
			Name:      "state_dwell_seconds",
			Help:      "Time spent in a state before leaving it",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
		}, []string{"state"}),
		Current: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "truman",
			Name:      "current_state",
			Help:      "1 for the state the controller is in, 0 otherwise",
		}, []string{"state"}),
	}
	for _, c := range []prometheus.Collector{m.Runs, m.Ticks, m.Transitions, m.Dwell, m.Current} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(*domain.RunEvent) {
			m.Runs.Inc()
			m.setCurrent(domain.Begin)
		},
		OnStateLeave: func(e *domain.StateEvent) {
			m.Transitions.WithLabelValues(e.State.String(), e.Peer.String()).Inc()
			m.Dwell.WithLabelValues(e.State.String()).Observe(e.Dwell.Seconds())
		},
		OnStateEnter: func(e *domain.StateEvent) {
			m.setCurrent(e.State)
		},
		OnTick: func(*domain.TickEvent) {
			m.Ticks.Inc()
		},
	}
}

func (m *Metrics) setCurrent(s domain.State) {
	for _, st := range domain.States() {
		v := 0.0
		if st == s {
			v = 1
		}
		m.Current.WithLabelValues(st.String()).Set(v)
	}
}
