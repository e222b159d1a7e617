// Package httpapi exposes the analysis pipeline over HTTP: upload a dataset,
// get the aggregate and comparison results back as JSON or a rendered HTML
// report.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"armbench/adapters/report"
	"armbench/adapters/tabular"
	"armbench/domain/benchmark"
	"armbench/internal"
	"armbench/internal/analysis"
	"armbench/internal/config"
	"armbench/internal/errors"
)

// Server is the analysis HTTP service
type Server struct {
	router   *chi.Mux
	pipeline *analysis.Pipeline
	builder  *report.Builder
	config   *config.Config
	logger   *internal.Logger
}

// NewServer creates the service and wires its routes
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		pipeline: analysis.NewPipeline(cfg.Analysis.MaxGroupWorkers),
		builder:  report.NewBuilder(),
		config:   cfg,
		logger:   internal.DefaultLogger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/benchmark", s.handleBenchmark)
	s.router.Get("/api/plans", s.handlePlans)
	s.router.Post("/api/analyze", s.handleAnalyze)
}

// Handler exposes the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server on the configured port
func (s *Server) Start() error {
	addr := ":" + s.config.Server.Port
	s.logger.Info("httpapi: listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBenchmark returns the literature benchmark constants both designs
// are compared against
func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"traditional": s.config.Benchmark.Metrics(),
		"gearless":    benchmark.DefaultGearless().Metrics(),
	})
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"plans": []string{"performance", "structural"},
	})
}

// handleAnalyze accepts a multipart dataset upload under the "dataset" field,
// runs the named plan over it and returns the result. With format=html the
// response is the rendered report page instead of JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	plan, opts, err := s.planByName(r.URL.Query().Get("plan"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	path, cleanup, err := s.receiveUpload(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanup()

	t, err := tabular.NewReader(path).ReadTable()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.pipeline.Run(r.Context(), t, plan)
	if err != nil {
		s.respondError(w, statusFor(err), err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		md := s.builder.Build(result, opts)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, report.RenderHTML(opts.Title, md))
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) planByName(name string) (analysis.Plan, report.Options, error) {
	switch name {
	case "", "performance":
		return analysis.PerformancePlan(s.config.Benchmark), report.PerformanceOptions(), nil
	case "structural":
		return analysis.StructuralPlan(s.config.Benchmark, benchmark.DefaultGearless()), report.StructuralOptions(), nil
	}
	return analysis.Plan{}, report.Options{}, errors.InvalidInput("unknown plan " + name)
}

// receiveUpload spools the uploaded dataset to a temp file so the tabular
// reader can sniff the format from the extension
func (s *Server) receiveUpload(r *http.Request) (string, func(), error) {
	file, header, err := r.FormFile("dataset")
	if err != nil {
		return "", nil, errors.InvalidInput("multipart field \"dataset\" is required")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		return "", nil, errors.InvalidInput("dataset must be a .csv or .xlsx file")
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", nil, errors.IOError("creating upload spool file", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, errors.IOError("spooling upload", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, errors.IOError("closing upload spool file", err)
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// statusFor maps pipeline error codes onto HTTP statuses. Data-shape
// problems are the client's fault; everything else is ours.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeMissingColumn, errors.CodeEmptyTable, errors.CodeInvalidPartition,
		errors.CodeDivisionByZeroMetric, errors.CodeInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("httpapi: request failed: %v", err)
	s.respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
