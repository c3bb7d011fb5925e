package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/npcready/internal/logging"
	"github.com/agbru/npcready/internal/orchestration"
)

const shutdownTimeout = 5 * time.Second

// ReadinessProbe reports the latest coordination outcome for one entity.
// *orchestration.Coordinator satisfies it.
type ReadinessProbe interface {
	Entity() string
	Outcome() (orchestration.Outcome, bool)
}

// Server serves /healthz, /readyz and /metrics.
type Server struct {
	addr     string
	entity   string
	probe    ReadinessProbe
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	http     *http.Server
}

// readyResponse is the /readyz body.
type readyResponse struct {
	Entity    string   `json:"entity"`
	Ready     bool     `json:"ready"`
	Outcome   string   `json:"outcome"`
	Message   string   `json:"message,omitempty"`
	Completed []string `json:"completed,omitempty"`
}

// New creates a server reporting on probe's entity. HTTP series are
// registered on reg.
func New(addr string, probe ReadinessProbe, reg *prometheus.Registry, logger logging.Logger) *Server {
	s := &Server{
		addr:     addr,
		entity:   probe.Entity(),
		probe:    probe,
		metrics:  NewMetrics(reg),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routed handler, wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.wrap("/healthz", s.handleHealth))
	mux.HandleFunc("/readyz", s.wrap("/readyz", s.handleReady))
	mux.HandleFunc("/metrics", s.wrap("/metrics", s.handleMetrics))
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("probe server listening", logging.String("addr", s.addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) wrap(path string, next http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(path, next))
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(path, rec.code)
	}
}

func (s *Server) allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	s.logger.Debug("method not allowed",
		logging.String("path", r.URL.Path),
		logging.String("method", r.Method))
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	resp := readyResponse{Entity: s.entity, Outcome: "pending"}
	code := http.StatusServiceUnavailable
	if o, ok := s.probe.Outcome(); ok {
		resp.Outcome = o.Kind.String()
		resp.Message = o.String()
		resp.Completed = o.Completed
		if o.Success() {
			resp.Ready = true
			code = http.StatusOK
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encode readiness response", err)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.allowGet(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}
