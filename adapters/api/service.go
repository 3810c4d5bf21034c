// Package api exposes the fold-change pipeline over HTTP.
package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"qpcrfold/app"
	"qpcrfold/domain/core"
	"qpcrfold/domain/qpcr"
	"qpcrfold/internal/errors"
	"qpcrfold/ports"
)

// Service wires the analysis pipeline into a chi router. The repository is
// optional; without it analyses are computed but never persisted.
type Service struct {
	router   *chi.Mux
	analysis *app.AnalysisService
	sweep    *app.SweepService
	results  ports.ResultRepository
}

// NewService creates the HTTP service.
func NewService(analysis *app.AnalysisService, sweep *app.SweepService, results ports.ResultRepository) *Service {
	s := &Service{
		router:   chi.NewRouter(),
		analysis: analysis,
		sweep:    sweep,
		results:  results,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Router returns the configured handler.
func (s *Service) Router() http.Handler {
	return s.router
}

func (s *Service) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Service) setupRoutes() {
	s.router.Post("/api/analyses", s.handleAnalyze)
	s.router.Post("/api/sweeps", s.handleSweep)
	s.router.Get("/api/analyses", s.handleListResults)
	s.router.Get("/api/analyses/{id}", s.handleGetResult)
	s.router.Delete("/api/analyses/{id}", s.handleDeleteResult)
	s.router.Get("/api/health", s.handleHealth)
}

func (s *Service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "invalid request body: "+err.Error())
		return
	}
	if req.Config == nil {
		s.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "config is required")
		return
	}

	table, err := qpcr.NewTable(req.Columns, req.Rows)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, err.Error())
		return
	}

	analysis, err := s.analysis.Run(r.Context(), table, req.Config)
	if err != nil {
		s.writeError(w, statusFor(err), errors.GetCode(err), err.Error())
		return
	}

	if req.Persist && s.results != nil {
		if err := s.results.Save(r.Context(), analysis.Result); err != nil {
			s.writeError(w, http.StatusInternalServerError, errors.CodeDatabaseError, err.Error())
			return
		}
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *Service) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req SweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "invalid request body: "+err.Error())
		return
	}
	if req.Config == nil {
		s.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "config is required")
		return
	}
	if len(req.Tables) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "at least one table is required")
		return
	}

	tables := make([]app.NamedTable, 0, len(req.Tables))
	for _, t := range req.Tables {
		table, err := qpcr.NewTable(t.Columns, t.Rows)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.CodeInvalidInput,
				"table "+t.Name+": "+err.Error())
			return
		}
		tables = append(tables, app.NamedTable{Name: t.Name, Table: table})
	}

	outcomes := s.sweep.Run(r.Context(), tables, req.Config)
	resp := make([]SweepOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		resp[i] = SweepOutcomeResponse{Name: o.Name, Analysis: o.Analysis}
		if o.Err != nil {
			resp[i].Error = o.Err.Error()
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		s.writeError(w, http.StatusNotFound, errors.CodeNotFound, "result persistence is not configured")
		return
	}
	id := core.ID(chi.URLParam(r, "id"))
	result, err := s.results.GetByID(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if stderrors.Is(err, core.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, errors.GetCode(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleListResults(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		s.writeError(w, http.StatusNotFound, errors.CodeNotFound, "result persistence is not configured")
		return
	}
	limit := queryInt(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}
	offset := queryInt(r, "offset", 0)

	results, err := s.results.List(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, errors.CodeDatabaseError, err.Error())
		return
	}
	if results == nil {
		results = []*qpcr.Result{}
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Service) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		s.writeError(w, http.StatusNotFound, errors.CodeNotFound, "result persistence is not configured")
		return
	}
	id := core.ID(chi.URLParam(r, "id"))
	if err := s.results.Delete(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if stderrors.Is(err, core.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, errors.GetCode(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps pipeline stage failures onto HTTP statuses: everything the
// caller can fix in the input is a 422, the rest is a 500.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeConfigInvalid, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNormalization, errors.CodeTransform, errors.CodeFitting, errors.CodeContrast:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, ErrorResponse{Code: code, Error: message})
}
