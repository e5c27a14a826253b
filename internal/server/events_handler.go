// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/exam-vault/internal/database"
	"github.com/exam-vault/internal/logger"
)

// EventsHandler serves the ingest audit timeline.
type EventsHandler struct {
	events *database.EventLogger
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(events *database.EventLogger) *EventsHandler {
	return &EventsHandler{events: events}
}

// HandleRecent handles GET /api/v1/events requests. An optional ?limit=N
// caps the number of events returned (default 100).
func (h *EventsHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid limit", "input_error")
			return
		}
		limit = parsed
	}

	events, err := h.events.GetRecentEvents(limit)
	if err != nil {
		logger.Errorf("failed to load events: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load events", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}
