// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Event represents one ingest event: an upload received, a paper saved, a
// candidate skipped, or a batch failure.
type Event struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"` // upload, saved, skipped, failed
	Document  string    `json:"document"`
	Details   string    `json:"details"`
}

// EventLogger records ingest events to SQLite for the audit timeline.
type EventLogger struct {
	db *sql.DB
}

// NewEventLogger creates a new event logger.
func NewEventLogger(db *sql.DB) (*EventLogger, error) {
	logger := &EventLogger{db: db}
	if err := logger.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize events schema: %w", err)
	}
	return logger, nil
}

// initSchema creates the events table if it doesn't exist.
func (e *EventLogger) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		event_type TEXT NOT NULL,
		document TEXT NOT NULL,
		details TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_events_document ON events(document);
	`
	_, err := e.db.Exec(schema)
	return err
}

// LogEvent logs a new ingest event.
func (e *EventLogger) LogEvent(eventType, document, details string) error {
	_, err := e.db.Exec(
		"INSERT INTO events (timestamp, event_type, document, details) VALUES (?, ?, ?, ?)",
		time.Now(),
		eventType,
		document,
		details,
	)
	return err
}

// GetRecentEvents returns the last N events, newest first.
func (e *EventLogger) GetRecentEvents(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := e.db.Query(
		"SELECT id, timestamp, event_type, document, details FROM events ORDER BY timestamp DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.ID, &event.Timestamp, &event.EventType, &event.Document, &event.Details); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
