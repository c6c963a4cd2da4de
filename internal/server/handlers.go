// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/litreview/internal/registry"
)

type submitRunRequest struct {
	Topic      string `json:"topic"`
	PaperLimit int    `json:"paperLimit"`
}

type submitRunResponse struct {
	RunID   string `json:"runId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubmitRun(w http.ResponseWriter, r *http.Request) {
	var req submitRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.PaperLimit < 0 {
		writeError(w, http.StatusBadRequest, "paperLimit must not be negative")
		return
	}

	run := s.registry.Create(req.Topic, req.PaperLimit)
	go s.execute(run.ID, req.Topic, req.PaperLimit)

	writeJSON(w, http.StatusAccepted, submitRunResponse{
		RunID:   run.ID,
		Status:  run.Status,
		Message: "research run started",
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"runs": s.registry.List()})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.registry.Get(chi.URLParam(r, "runID"))
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	run, err := s.registry.Get(chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if run.Status != registry.StatusCompleted {
		writeError(w, http.StatusConflict, "run is not completed: "+run.Status)
		return
	}
	if _, err := os.Stat(run.ReportPath); err != nil {
		writeError(w, http.StatusInternalServerError, "report artifact is missing")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(run.ReportPath)+`"`)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	http.ServeFile(w, r, run.ReportPath)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; nothing useful left to do.
		_ = err
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
