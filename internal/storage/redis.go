package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAPI is the subset of the go-redis client the store uses.
type RedisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisStore keeps questions as JSON strings. A positive ttl expires them.
type RedisStore struct {
	client RedisAPI
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client RedisAPI, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Put(ctx context.Context, q *QuizQuestion) (string, error) {
	if err := prepare(q); err != nil {
		return "", err
	}

	data, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("marshaling question %s: %w", q.ID, err)
	}
	if err := s.client.Set(ctx, s.key(q.ID), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("saving question %s: %w", q.ID, err)
	}
	return q.ID, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*QuizQuestion, bool, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading question %s: %w", id, err)
	}

	var q QuizQuestion
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, false, fmt.Errorf("decoding question %s: %w", id, err)
	}
	return &q, true, nil
}

// Provision checks the server is reachable.
func (s *RedisStore) Provision(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
