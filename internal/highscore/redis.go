package highscore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps scores in a sorted set.
type RedisStore struct {
	client *redis.Client
	key    string
	keep   int
}

// OpenRedis connects to the server at url and checks it answers.
func OpenRedis(ctx context.Context, url, key string, keep int) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return NewRedisStore(client, key, keep), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, key string, keep int) *RedisStore {
	return &RedisStore{client: client, key: key, keep: keep}
}

// Submit adds the score and trims the set to the best keep entries. Members
// carry a timestamp so equal scores are kept apart.
func (r *RedisStore) Submit(ctx context.Context, score int) error {
	member := strconv.Itoa(score) + ":" + strconv.FormatInt(time.Now().UnixNano(), 36)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, r.key, redis.Z{Score: float64(score), Member: member})
		if r.keep > 0 {
			pipe.ZRemRangeByRank(ctx, r.key, 0, int64(-r.keep-1))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to submit score: %w", err)
	}
	return nil
}

func (r *RedisStore) Top(ctx context.Context, n int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}
	entries, err := r.client.ZRevRangeWithScores(ctx, r.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	scores := make([]int, len(entries))
	for i, z := range entries {
		scores[i] = int(z.Score)
	}
	return scores, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
