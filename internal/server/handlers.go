package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/job-requirements-extractor/internal/analysis"
	"github.com/jonathan/job-requirements-extractor/internal/db"
)

// AnalyzeRequest is the body of POST /analyze. Exactly one of Text or URL is set.
type AnalyzeRequest struct {
	Text       string `json:"text"`
	URL        string `json:"url" validate:"omitempty,http_url"`
	UseBrowser bool   `json:"use_browser"`
}

// ListAnalysesResponse is the body of GET /analyses
type ListAnalysesResponse struct {
	Analyses []db.AnalysisSummary `json:"analyses"`
	Limit    int                  `json:"limit"`
	Offset   int                  `json:"offset"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

var errNoStore = &ErrUnavailable{Feature: "analysis history", Reason: "no database configured"}

// handleAnalyze analyzes inline text or a posting URL
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	ctx := r.Context()
	var res *analysis.Result
	if req.URL != "" {
		res, err = s.analyzer.AnalyzeURL(ctx, req.URL, req.UseBrowser)
	} else {
		res, err = s.analyzer.Analyze(ctx, req.Text, "api")
	}
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, res)
}

func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*AnalyzeRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Field: "body", Message: fmt.Sprintf("exceeds %d bytes", tooLarge.Limit)}
		}
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON"}
	}

	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, &ErrValidation{Field: "url", Message: "must be an http or https URL"}
		}
		return nil, err
	}

	req.URL = strings.TrimSpace(req.URL)
	switch {
	case req.Text != "" && req.URL != "":
		return nil, &ErrValidation{Field: "text", Message: "provide either text or url, not both"}
	case req.URL != "":
		return &req, nil
	case strings.TrimSpace(req.Text) == "":
		return nil, &ErrValidation{Field: "text", Message: "text or url is required"}
	case s.maxTextLength > 0 && utf8.RuneCountInString(req.Text) > s.maxTextLength:
		return nil, &ErrValidation{Field: "text", Message: fmt.Sprintf("exceeds %d characters", s.maxTextLength)}
	}
	return &req, nil
}

// handleListAnalyses lists stored analyses newest first
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, r, errNoStore)
		return
	}

	limit, err := queryInt(r, "limit", db.DefaultListLimit)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	switch {
	case limit == 0:
		limit = db.DefaultListLimit
	case limit > db.MaxListLimit:
		limit = db.MaxListLimit
	}

	analyses, err := s.store.ListAnalyses(r.Context(), limit, offset)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if analyses == nil {
		analyses = []db.AnalysisSummary{}
	}
	s.jsonResponse(w, r, http.StatusOK, ListAnalysesResponse{Analyses: analyses, Limit: limit, Offset: offset})
}

// handleGetAnalysis returns one stored analysis including its report
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, r, errNoStore)
		return
	}
	id, err := pathUUID(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	a, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if a == nil {
		s.errorResponse(w, r, &ErrNotFound{Resource: "analysis", ID: id.String()})
		return
	}
	s.jsonResponse(w, r, http.StatusOK, a)
}

// handleDeleteAnalysis removes one stored analysis
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, r, errNoStore)
		return
	}
	id, err := pathUUID(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.store.DeleteAnalysis(r.Context(), id); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "disabled"}
	if s.store != nil {
		resp.Database = "ok"
		if err := s.store.Ping(r.Context()); err != nil {
			resp.Database = "unavailable"
		}
	}
	s.jsonResponse(w, r, http.StatusOK, resp)
}

func pathUUID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ErrValidation{Field: key, Message: "must be a non-negative integer"}
	}
	return v, nil
}
