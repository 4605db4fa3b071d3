package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/acquisition"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/db"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/pipeline"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/server/middleware"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

// maxUploadBytes caps the multipart form size for /analyze.
const maxUploadBytes = 10 << 20

// PreviewResponse carries the extracted and cleaned posting fields.
type PreviewResponse struct {
	Job types.JobFields `json:"job"`
}

// UserErrorResponse is the body for analysis failures with a user-facing
// message.
type UserErrorResponse struct {
	Error    string `json:"error"`
	Severity string `json:"severity"`
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	s.jsonResponse(w, code, map[string]string{"status": status})
}

// handlePreview extracts and cleans a posting without running an analysis.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req types.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	outcome := s.previewer.Resolve(r.Context(), acquisition.ModeAuto, req.JobLink, types.JobFields{})
	if !outcome.OK {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Could not extract the posting from that link")
		return
	}

	s.jsonResponse(w, http.StatusOK, PreviewResponse{Job: outcome.Fields})
}

// handleAnalyze runs the full analysis from a multipart form: cv_file plus
// mode, job_link, description, title, company fields.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := pipeline.Request{
		UserID:      userID.String(),
		Mode:        acquisition.Mode(r.FormValue("mode")),
		JobLink:     r.FormValue("job_link"),
		Title:       r.FormValue("title"),
		Company:     r.FormValue("company"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("cv_file")
	if err == nil {
		defer func() { _ = file.Close() }()
		req.Resume = file
		req.ResumeFilename = header.Filename
	}

	result, uerr := s.analyzer.Analyze(r.Context(), req)
	if uerr != nil {
		code := http.StatusBadRequest
		if uerr.Severity == pipeline.SeverityDanger {
			code = http.StatusBadGateway
		}
		s.jsonResponse(w, code, UserErrorResponse{
			Error:    uerr.Message,
			Severity: string(uerr.Severity),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleHistory lists the authenticated user's analyses, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	analyses, err := s.history.ListAnalyses(r.Context(), userID, limit)
	if err != nil {
		s.log.Error("history listing failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Could not load history")
		return
	}
	if analyses == nil {
		analyses = []db.Analysis{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"analyses": analyses})
}

// handleDashboard returns aggregate statistics over the user's history.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := s.history.HistoryStats(r.Context(), userID)
	if err != nil {
		s.log.Error("dashboard stats failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Could not load dashboard")
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}

// jsonResponse writes a JSON body with the given status code.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("response encoding failed", zap.Error(err))
	}
}

// errorResponse writes a JSON error body.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
