package queue

import (
	"context"
	"encoding/json"
	"time"
)

// Job is one unit of deferred work handed from the upload endpoint to the
// background extraction workers. Payload stays opaque here; the jobs
// package owns its shape per job type.
type Job struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Queue carries extraction jobs between the upload path and the workers.
type Queue interface {
	// Enqueue appends a job for the workers to pick up.
	Enqueue(ctx context.Context, job Job) error

	// Dequeue blocks until a job is available or ctx is cancelled.
	Dequeue(ctx context.Context) (Job, error)
}
