package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OptionSource answers region option queries.
type OptionSource interface {
	Level1Options() []string
	Level2Options(level1 string) []string
	Level3Options(level1, level2 string) []string
}

// Server exposes health, readiness, metrics, and read-only option endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates the sidecar HTTP server.
func NewServer(addr string, ready sharedobs.ReadinessChecker, options OptionSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      accessLog(logger)(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/forecasts", handleForecasts)
	mux.HandleFunc("GET /api/regions/level1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, options.Level1Options())
	})
	mux.HandleFunc("GET /api/regions/level2", func(w http.ResponseWriter, r *http.Request) {
		level1, ok := requireParams(w, r, "level1")
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, options.Level2Options(level1[0]))
	})
	mux.HandleFunc("GET /api/regions/level3", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requireParams(w, r, "level1", "level2")
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, options.Level3Options(p[0], p[1]))
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type forecastResponse struct {
	domain.ForecastType
	Variables []domain.Variable `json:"variables"`
}

func handleForecasts(w http.ResponseWriter, _ *http.Request) {
	types := domain.ForecastTypes()
	out := make([]forecastResponse, len(types))
	for i, f := range types {
		out[i] = forecastResponse{ForecastType: f, Variables: domain.Variables(f.Kind)}
	}
	writeJSON(w, http.StatusOK, out)
}

// requireParams returns the named query values in order, or writes a 400 if
// any is missing.
func requireParams(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	q := r.URL.Query()
	vals := make([]string, len(names))
	for i, name := range names {
		vals[i] = q.Get(name)
		if vals[i] == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "missing query parameter: " + name,
			})
			return nil, false
		}
	}
	return vals, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
