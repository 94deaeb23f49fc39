package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fairlens/fairlens/pkg/config"
	"github.com/fairlens/fairlens/pkg/dataset"
	"github.com/fairlens/fairlens/pkg/fairness"
)

// uploadField is the multipart form field carrying the CSV file.
const uploadField = "file"

// Server exposes the audit engine over HTTP. It holds only config;
// every request is a self-contained audit.
type Server struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/audit", s.handleAudit)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAudit decodes an uploaded CSV, resolves column names from
// query params (falling back to configured defaults), and runs one
// audit. Schema and parse problems are client errors; the engine
// itself cannot fail on a schema-valid dataset.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	f, _, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "uploaded file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "missing upload field: "+uploadField)
		return
	}
	defer f.Close()

	ds, err := dataset.LoadCSV(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read CSV: "+err.Error())
		return
	}

	cols := fairness.Columns{
		Sensitive: queryOr(r, "sensitive", s.cfg.Columns.Sensitive),
		YTrue:     queryOr(r, "y_true", s.cfg.Columns.YTrue),
		YPred:     queryOr(r, "y_pred", s.cfg.Columns.YPred),
	}

	result, err := fairness.Audit(ds, cols)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Debug("audit completed",
		"rows", result.DatasetSize,
		"groups", len(result.GroupDistribution),
		"score", result.FairnessScore)

	writeJSON(w, http.StatusOK, result)
}

func queryOr(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
