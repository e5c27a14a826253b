// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/exam-vault/internal/database"
	"github.com/exam-vault/internal/extraction"
	"github.com/exam-vault/internal/jobs"
	"github.com/exam-vault/internal/logger"
	"github.com/exam-vault/internal/pdf"
	"github.com/exam-vault/internal/queue"
)

// maxUploadSize bounds the multipart form parse (64 MB).
const maxUploadSize = 64 << 20

// UploadHandler holds dependencies for the paper upload endpoint.
type UploadHandler struct {
	pipeline   *extraction.Pipeline
	events     *database.EventLogger
	jobQueue   queue.Queue // nil when Redis is unavailable
	uploadsDir string
}

// NewUploadHandler creates a new upload handler with dependencies.
func NewUploadHandler(pipeline *extraction.Pipeline, events *database.EventLogger, jobQueue queue.Queue, uploadsDir string) *UploadHandler {
	return &UploadHandler{
		pipeline:   pipeline,
		events:     events,
		jobQueue:   jobQueue,
		uploadsDir: uploadsDir,
	}
}

// HandleUpload handles POST /api/v1/papers/upload requests.
//
// The uploaded PDF is written to a transient file, processed by the
// extraction pipeline and removed on every exit path. With ?async=1 and a
// live job queue the work is deferred to a worker instead and the transient
// file is owned by that worker.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err), "input_error")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "no file supplied", "input_error")
		return
	}
	defer file.Close()

	uploadID := uuid.New().String()
	pdfPath := filepath.Join(h.uploadsDir, uploadID+".pdf")

	if err := saveUpload(file, pdfPath); err != nil {
		logger.Errorf("failed to persist upload %s: %v", header.Filename, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to persist upload", "")
		return
	}

	pageCount, err := pdf.PageCount(pdfPath)
	if err != nil {
		os.Remove(pdfPath)
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unreadable PDF: %v", err), "input_error")
		return
	}

	if logErr := h.events.LogEvent("upload", header.Filename, fmt.Sprintf("uploadId=%s pages=%d", uploadID, pageCount)); logErr != nil {
		logger.Warnf("failed to log upload event: %v", logErr)
	}

	// Deferred path: hand the file to a worker and return immediately.
	if r.URL.Query().Get("async") == "1" && h.jobQueue != nil {
		payload := jobs.ExtractPaperPayload{
			UploadID:   uploadID,
			Document:   header.Filename,
			PDFPath:    pdfPath,
			PageCount:  pageCount,
			UploadedAt: time.Now(),
		}
		if err := jobs.EnqueueExtractPaper(r.Context(), h.jobQueue, payload); err != nil {
			os.Remove(pdfPath)
			writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to enqueue extraction: %v", err), "")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "queued",
			"upload_id": uploadID,
		})
		return
	}

	defer func() {
		if rmErr := os.Remove(pdfPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warnf("failed to remove upload %s: %v", pdfPath, rmErr)
		}
	}()

	summary, err := h.pipeline.Process(r.Context(), pdfPath, pageCount)
	if err != nil {
		h.writeProcessError(w, header.Filename, summary, err)
		return
	}

	if logErr := h.events.LogEvent("saved", header.Filename, fmt.Sprintf("saved=%d skipped=%d", len(summary.Saved), summary.Skipped)); logErr != nil {
		logger.Warnf("failed to log save event: %v", logErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":       "ok",
		"upload_id":    uploadID,
		"papers_saved": len(summary.Saved),
		"saved":        summary.Saved,
		"skipped":      summary.Skipped,
	})
}

// writeProcessError maps the pipeline's batch-abort errors to distinct
// response codes so callers can tell "structure unrecognized" apart from
// "structure recognized but content unusable".
func (h *UploadHandler) writeProcessError(w http.ResponseWriter, document string, summary *extraction.Summary, err error) {
	if logErr := h.events.LogEvent("failed", document, err.Error()); logErr != nil {
		logger.Warnf("failed to log failure event: %v", logErr)
	}

	var recErr *extraction.RecognitionError
	switch {
	case errors.Is(err, extraction.ErrNoPapersFound):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error(), "segmentation_empty")
	case errors.Is(err, extraction.ErrNoValidPapers):
		skipped := 0
		if summary != nil {
			skipped = summary.Skipped
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   err.Error(),
			"code":    "no_valid_papers",
			"skipped": skipped,
		})
	case errors.As(err, &recErr):
		writeJSONError(w, http.StatusInternalServerError, recErr.Error(), "recognition_failed")
	default:
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("processing failed: %v", err), "")
	}
}

// saveUpload streams the multipart file to its transient location.
func saveUpload(src io.Reader, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func writeJSONError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"error": message}
	if code != "" {
		body["code"] = code
	}
	json.NewEncoder(w).Encode(body)
}
