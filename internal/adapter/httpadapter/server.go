// Package httpadapter serves health, metrics, and the latest assessment's
// artifacts over HTTP, and lets operators trigger a synchronous refresh.
package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/tempo-aqi-etl/internal/adapter/artifact"
	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runner is the pipeline surface the server depends on.
type Runner interface {
	RunOnce(ctx context.Context) (domain.Assessment, error)
	Latest() (domain.Assessment, bool)
}

// File is a named on-disk artifact reported by /debug.
type File struct {
	Name string
	Path string
}

// Server exposes health, readiness, metrics, and assessment endpoints.
type Server struct {
	httpServer *http.Server
	runner     Runner
	files      []File
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the health, metrics, and assessment
// routes wired to runner.
func NewServer(addr string, runner Runner, ready sharedobs.ReadinessChecker, files []File, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner: runner,
		files:  files,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /update", s.handleUpdate)
	mux.HandleFunc("GET /summary", s.withLatest(summarize))
	mux.HandleFunc("GET /advisory", s.withLatest(func(a domain.Assessment) any {
		return artifact.BuildAdvisoryDocument(a)
	}))
	mux.HandleFunc("GET /chart", s.withLatest(func(a domain.Assessment) any {
		return artifact.BuildChart(a.Zones)
	}))
	mux.HandleFunc("GET /map", s.withLatest(func(a domain.Assessment) any {
		return artifact.BuildMap(a.Points)
	}))
	mux.HandleFunc("GET /debug", s.handleDebug)

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

type updateResponse struct {
	Status      string    `json:"status"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Samples     int       `json:"samples"`
	Points      int       `json:"points"`
	Zones       int       `json:"zones"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	a, err := s.runner.RunOnce(r.Context())
	if err != nil {
		kind := domain.ErrorKind(err)
		status := http.StatusInternalServerError
		if kind != domain.KindOther {
			status = http.StatusUnprocessableEntity
		}
		s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
		return
	}
	s.writeJSON(w, http.StatusOK, updateResponse{
		Status:      "ok",
		RunID:       a.RunID,
		GeneratedAt: a.GeneratedAt,
		Samples:     a.Samples,
		Points:      len(a.Points),
		Zones:       len(a.Zones),
	})
}

// withLatest renders the latest assessment through build, or 404 before the
// first successful run.
func (s *Server) withLatest(build func(domain.Assessment) any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		a, ok := s.runner.Latest()
		if !ok {
			s.writeJSON(w, http.StatusNotFound, errorResponse{
				Error: "no assessment available yet",
				Kind:  "not_found",
			})
			return
		}
		s.writeJSON(w, http.StatusOK, build(a))
	}
}

type summaryResponse struct {
	RunID           string                 `json:"run_id"`
	GeneratedAt     time.Time              `json:"generated_at"`
	Samples         int                    `json:"samples"`
	Points          int                    `json:"points"`
	OutsideCoverage int                    `json:"outside_coverage"`
	OverallScore    int                    `json:"overall_score"`
	OverallLevel    domain.RiskLevel       `json:"overall_level"`
	Zones           []domain.ZoneAggregate `json:"zones"`
}

func summarize(a domain.Assessment) any {
	overall, _ := domain.OverallScore(a.Points)
	return summaryResponse{
		RunID:           a.RunID,
		GeneratedAt:     a.GeneratedAt,
		Samples:         a.Samples,
		Points:          len(a.Points),
		OutsideCoverage: a.OutsideCoverage(),
		OverallScore:    overall,
		OverallLevel:    domain.Level(float64(overall)),
		Zones:           a.Zones,
	}
}

type debugFile struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func (s *Server) handleDebug(w http.ResponseWriter, _ *http.Request) {
	out := make([]debugFile, 0, len(s.files))
	for _, f := range s.files {
		_, err := os.Stat(f.Path)
		out = append(out, debugFile{Name: f.Name, Path: f.Path, Exists: f.Path != "" && err == nil})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"files": out})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", "error", err)
	}
}
