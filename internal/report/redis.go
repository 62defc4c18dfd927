package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Redis stream runs are appended to.
const DefaultStream = "rawpix:runs"

// RedisPublisher appends run reports to a Redis stream.
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher connects to addr and verifies the server answers.
func NewRedisPublisher(ctx context.Context, addr, stream string) (*RedisPublisher, error) {
	if stream == "" {
		stream = DefaultStream
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisPublisher{client: client, stream: stream}, nil
}

// Publish appends r to the stream and returns the entry ID.
func (p *RedisPublisher) Publish(ctx context.Context, r Run) (string, error) {
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: Fields(r),
	}).Result()
	if err != nil {
		return "", fmt.Errorf("publish run %s: %w", r.ID, err)
	}
	return id, nil
}

// Close releases the connection pool.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Fields flattens r into stream entry fields. Durations are in nanoseconds.
func Fields(r Run) map[string]any {
	fields := map[string]any{
		"id":              r.ID,
		"timestamp":       r.Timestamp.UTC().Format(time.RFC3339Nano),
		"width":           strconv.Itoa(r.Width),
		"height":          strconv.Itoa(r.Height),
		"workers":         strconv.Itoa(r.Workers),
		"sequential_ns":   strconv.FormatInt(r.Sequential.Nanoseconds(), 10),
		"parallel_ns":     strconv.FormatInt(r.Parallel.Nanoseconds(), 10),
		"parallel_width":  strconv.Itoa(r.ParallelWidth),
		"parallel_height": strconv.Itoa(r.ParallelHeight),
	}
	if r.Identical != nil {
		fields["identical"] = strconv.FormatBool(*r.Identical)
	}
	return fields
}
