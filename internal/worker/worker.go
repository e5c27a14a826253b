package worker

import (
	"context"
	"sync"

	"github.com/exam-vault/internal/logger"
	"github.com/exam-vault/internal/queue"
)

// HandlerFunc processes a job. It should return an error if processing fails.
type HandlerFunc func(ctx context.Context, job queue.Job) error

// StartWorkers starts a pool of workers that process jobs from the queue.
// Workers stop when the context is cancelled. A handler error is logged and
// the worker moves on; jobs are not retried.
func StartWorkers(ctx context.Context, q queue.Queue, handler HandlerFunc, workerCount int) error {
	logger.Printf("StartWorkers: workerCount=%d", workerCount)

	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		workerID := i + 1
		go func() {
			defer wg.Done()
			workerLoop(ctx, q, handler, workerID)
		}()
	}

	wg.Wait()
	logger.Printf("StartWorkers: all workers stopped")
	return nil
}

// workerLoop is the main loop for a single worker.
func workerLoop(ctx context.Context, q queue.Queue, handler HandlerFunc, workerID int) {
	for {
		select {
		case <-ctx.Done():
			logger.Printf("worker %d: context cancelled, stopping", workerID)
			return
		default:
		}

		job, err := q.Dequeue(ctx)
		if err != nil {
			if err == context.Canceled || err == context.DeadlineExceeded {
				return
			}
			logger.Warnf("worker %d: dequeue error: %v, continuing", workerID, err)
			continue
		}

		logger.Printf("worker %d: processing job type=%s", workerID, job.Type)
		if err := handler(ctx, job); err != nil {
			logger.Errorf("worker %d: handler error for job type=%s: %v", workerID, job.Type, err)
			continue
		}
	}
}
