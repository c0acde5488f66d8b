package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/truman/internal/logging"
	"github.com/aretw0/truman/internal/presentation/graph"
	"github.com/aretw0/truman/internal/runtime"
	"github.com/aretw0/truman/pkg/domain"
	"github.com/aretw0/truman/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controller is the read side of the controller the dashboard inspects.
type Controller interface {
	Config() domain.Config
	Run() domain.RunContext
}

// Server holds the dashboard dependencies.
type Server struct {
	Controller Controller
	Telemetry  ports.TelemetrySource
	Gatherer   prometheus.Gatherer
	Streams    *StreamManager
	Logger     *slog.Logger
}

// StateResponse is the body of GET /state.
type StateResponse struct {
	Config domain.Config     `json:"config"`
	Run    domain.RunContext `json:"run"`
}

// NewServer fills the optional fields of a Server.
// A nil gatherer exposes the default registry.
func NewServer(ctrl Controller, telemetry ports.TelemetrySource, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		Controller: ctrl,
		Telemetry:  telemetry,
		Gatherer:   gatherer,
		Streams:    NewStreamManager(logger),
		Logger:     logger,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.Healthz)
	r.Get("/state", s.State)
	r.Get("/telemetry", s.TelemetrySnapshot)
	r.Get("/graph", s.Graph)
	r.Get("/events", s.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "ok\n")
}

// State handles GET /state.
func (s *Server) State(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, StateResponse{
		Config: s.Controller.Config(),
		Run:    s.Controller.Run(),
	})
}

// TelemetrySnapshot handles GET /telemetry.
func (s *Server) TelemetrySnapshot(w http.ResponseWriter, _ *http.Request) {
	if s.Telemetry == nil {
		http.Error(w, "telemetry not available", http.StatusNotFound)
		return
	}
	s.writeJSON(w, s.Telemetry.Snapshot())
}

// Graph handles GET /graph.
func (s *Server) Graph(w http.ResponseWriter, _ *http.Request) {
	run := s.Controller.Run()
	out := graph.GenerateMermaid(runtime.Transitions(s.Controller.Config()), &graph.Overlay{
		Current:    run.State,
		HasCurrent: true,
	})
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, out)
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response failed", "err", err)
	}
}
