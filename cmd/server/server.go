package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Starkspan/Final5/internal/analyzer"
	"github.com/Starkspan/Final5/internal/estimate"
	"github.com/Starkspan/Final5/internal/logger"
	"github.com/Starkspan/Final5/internal/metrics"
)

const (
	uploadField       = "pdf"
	multipartMemory   = 8 << 20
	analysisFailedMsg = "analysis failed"
)

type server struct {
	analyzer       *analyzer.Service
	metrics        *metrics.Recorder
	logger         *slog.Logger
	maxUploadBytes int64
	corsOrigin     string
	exposeErrors   bool
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestIDMiddleware)
	r.Use(s.accessLogMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)
	r.Post("/pdf/analyze", s.handlePDFAnalyze)
	r.Post("/text/analyze", s.handleTextAnalyze)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analyzer.Catalog())
}

func (s *server) handlePDFAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "expected multipart form with a pdf file")
		return
	}

	file, _, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "no pdf file uploaded")
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	in := analyzer.Input{
		Quantity:    estimate.ParseQuantity(formValue(r, "quantity", "stueckzahl")),
		TargetPrice: optionalFormValue(r, "targetPrice", "zielpreis"),
	}

	result, err := s.analyzer.Analyze(r.Context(), document, in)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Response())
}

type textAnalyzeRequest struct {
	Text        string          `json:"text"`
	Quantity    json.RawMessage `json:"quantity"`
	TargetPrice any             `json:"targetPrice"`
}

func (s *server) handleTextAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	}

	var req textAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in := analyzer.Input{
		Quantity:    parseJSONQuantity(req.Quantity),
		TargetPrice: req.TargetPrice,
	}

	result, err := s.analyzer.AnalyzeText(r.Context(), req.Text, in)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Response())
}

func (s *server) writeAnalysisError(w http.ResponseWriter, err error) {
	body := map[string]string{"error": analysisFailedMsg}
	if s.exposeErrors {
		body["detail"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// formValue returns the first non-empty value among the given field names.
func formValue(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.FormValue(name)); v != "" {
			return v
		}
	}
	return ""
}

func optionalFormValue(r *http.Request, names ...string) any {
	if v := formValue(r, names...); v != "" {
		return v
	}
	return nil
}

// parseJSONQuantity accepts a number or a numeric string.
func parseJSONQuantity(raw json.RawMessage) int {
	if len(raw) == 0 {
		return estimate.DefaultQuantity
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return estimate.NormalizeQuantity(int(n))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return estimate.ParseQuantity(s)
	}
	return estimate.DefaultQuantity
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *server) requestLogger(r *http.Request) *slog.Logger {
	return logger.WithContext(r.Context(), s.logger)
}
