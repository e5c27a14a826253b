// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/exam-vault/internal/database"
	"github.com/exam-vault/internal/extraction"
	"github.com/exam-vault/internal/logger"
	"github.com/exam-vault/internal/queue"
)

const JobTypeExtractPaper = "extract_paper"

// ExtractPaperPayload represents the payload for a deferred extraction job.
// PDFPath points at the already-persisted upload; the worker owns the file
// from here and removes it when done.
type ExtractPaperPayload struct {
	UploadID   string    `json:"uploadId"`
	Document   string    `json:"document"` // original filename, for the audit log
	PDFPath    string    `json:"pdfPath"`
	PageCount  int       `json:"pageCount"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// EnqueueExtractPaper enqueues a deferred extraction job.
func EnqueueExtractPaper(ctx context.Context, q queue.Queue, payload ExtractPaperPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	job := queue.Job{
		Type:      JobTypeExtractPaper,
		Payload:   payloadJSON,
		CreatedAt: time.Now(),
	}
	if err := q.Enqueue(ctx, job); err != nil {
		return err
	}

	logger.Printf("EnqueueExtractPaper: uploadId=%s document=%s pages=%d", payload.UploadID, payload.Document, payload.PageCount)
	return nil
}

// NewExtractHandler returns the worker handler that runs the extraction
// pipeline for queued uploads and records the outcome in the event log.
func NewExtractHandler(pipeline *extraction.Pipeline, events *database.EventLogger) func(ctx context.Context, job queue.Job) error {
	return func(ctx context.Context, job queue.Job) error {
		if job.Type != JobTypeExtractPaper {
			logger.Warnf("extract handler: unexpected job type %s", job.Type)
			return nil
		}

		var payload ExtractPaperPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal extract payload: %w", err)
		}

		defer func() {
			if err := os.Remove(payload.PDFPath); err != nil && !os.IsNotExist(err) {
				logger.Warnf("extract handler: failed to remove upload %s: %v", payload.PDFPath, err)
			}
		}()

		summary, err := pipeline.Process(ctx, payload.PDFPath, payload.PageCount)
		if err != nil {
			if logErr := events.LogEvent("failed", payload.Document, err.Error()); logErr != nil {
				logger.Warnf("extract handler: failed to log event: %v", logErr)
			}
			return fmt.Errorf("extraction failed for %s: %w", payload.Document, err)
		}

		details := fmt.Sprintf("saved=%d skipped=%d", len(summary.Saved), summary.Skipped)
		if logErr := events.LogEvent("saved", payload.Document, details); logErr != nil {
			logger.Warnf("extract handler: failed to log event: %v", logErr)
		}

		logger.Printf("extract handler: uploadId=%s %s", payload.UploadID, details)
		return nil
	}
}
