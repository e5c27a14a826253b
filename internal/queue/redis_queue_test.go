package queue

import (
	"context"
	"testing"
	"time"

	"github.com/exam-vault/internal/config"
)

func TestRedisQueue_EnqueueDequeue(t *testing.T) {
	// Skip if Redis is not available
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	client, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	queueKey := "test:extract:queue:" + time.Now().Format("20060102150405")
	q, err := NewRedisQueue(client, queueKey)
	if err != nil {
		t.Fatalf("NewRedisQueue failed: %v", err)
	}
	defer client.Del(ctx, queueKey)

	job := Job{
		Type:      "extract_paper",
		Payload:   []byte(`{"uploadId":"abc","pageCount":3}`),
		CreatedAt: time.Now(),
	}
	if err := q.Enqueue(ctx, job); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	dequeueCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	got, err := q.Dequeue(dequeueCtx)
	if err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	if got.Type != job.Type {
		t.Errorf("Expected job type %q, got %q", job.Type, got.Type)
	}
	if string(got.Payload) != string(job.Payload) {
		t.Errorf("Payload mismatch: %s", got.Payload)
	}
}

func TestRedisQueue_DequeueCancelled(t *testing.T) {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	client, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	queueKey := "test:extract:empty:" + time.Now().Format("20060102150405")
	q, err := NewRedisQueue(client, queueKey)
	if err != nil {
		t.Fatalf("NewRedisQueue failed: %v", err)
	}
	defer client.Del(ctx, queueKey)

	dequeueCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if _, err := q.Dequeue(dequeueCtx); err == nil {
		t.Errorf("Expected error when context expires on an empty queue")
	}
}
