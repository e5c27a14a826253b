package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/exam-vault/internal/logger"
)

// RedisQueue implements Queue using Redis Lists.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue creates a new Redis-backed queue.
// client: the Redis client to use
// key: the Redis key name for the queue (e.g., "extract:jobs")
func NewRedisQueue(client *redis.Client, key string) (Queue, error) {
	if key == "" {
		key = "extract:jobs"
	}

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisQueue{client: client, key: key}, nil
}

// Enqueue adds a job to the queue using RPUSH.
func (r *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := r.client.RPush(ctx, r.key, data).Err(); err != nil {
		logger.Errorf("Enqueue: failed to push job type=%s: %v", job.Type, err)
		return err
	}

	logger.Debugf("Enqueue: job type=%s key=%s payloadSize=%d", job.Type, r.key, len(data))
	return nil
}

// Dequeue blocks until a job is available using BLPOP, then returns it.
func (r *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	// BLPOP with a zero timeout blocks indefinitely; run it in a goroutine so
	// context cancellation still wins.
	type result struct {
		val []string
		err error
	}
	resultChan := make(chan result, 1)

	go func() {
		val, err := r.client.BLPop(ctx, 0, r.key).Result()
		resultChan <- result{val: val, err: err}
	}()

	select {
	case <-ctx.Done():
		return Job{}, ctx.Err()
	case res := <-resultChan:
		if res.err != nil {
			if res.err == redis.Nil {
				return Job{}, ctx.Err()
			}
			return Job{}, res.err
		}
		if len(res.val) < 2 {
			return Job{}, fmt.Errorf("invalid result from Redis")
		}

		var job Job
		if err := json.Unmarshal([]byte(res.val[1]), &job); err != nil {
			return Job{}, err
		}
		return job, nil
	}
}
