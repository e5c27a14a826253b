// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/exam-vault/internal/database"
	"github.com/exam-vault/internal/export"
	"github.com/exam-vault/internal/logger"
)

// PapersHandler serves the persisted papers.
type PapersHandler struct {
	store *database.PaperStore
}

// NewPapersHandler creates a new papers handler.
func NewPapersHandler(store *database.PaperStore) *PapersHandler {
	return &PapersHandler{store: store}
}

// HandleList handles GET /api/v1/papers requests.
func (h *PapersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	papers, err := h.store.ListPapers(r.Context())
	if err != nil {
		logger.Errorf("failed to list papers: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to list papers", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"papers": papers,
		"count":  len(papers),
	})
}

// HandleQuestions handles GET /api/v1/papers/{id}/questions requests.
func (h *PapersHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	// Path shape: /api/v1/papers/{id}/questions
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 5 || parts[4] != "questions" {
		writeJSONError(w, http.StatusNotFound, "not found", "")
		return
	}
	paperID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid paper id", "")
		return
	}

	questions, err := h.store.GetQuestions(r.Context(), paperID)
	if err != nil {
		logger.Errorf("failed to load questions for paper %d: %v", paperID, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load questions", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"paper_id":  paperID,
		"questions": questions,
		"count":     len(questions),
	})
}

// HandleExport handles GET /api/v1/papers/export requests and streams an
// Excel workbook of all papers and their questions.
func (h *PapersHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	ctx := r.Context()
	papers, err := h.store.ListPapers(ctx)
	if err != nil {
		logger.Errorf("failed to list papers for export: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to export papers", "")
		return
	}

	workbook, err := export.PapersWorkbook(ctx, papers, h.store.GetQuestions)
	if err != nil {
		logger.Errorf("failed to build export workbook: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to export papers", "")
		return
	}

	filename := fmt.Sprintf("papers-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := workbook.Write(w); err != nil {
		logger.Errorf("failed to stream export workbook: %v", err)
	}
}
