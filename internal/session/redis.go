package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careerforge/interviewer/internal/model/interview"
)

const redisKeyPrefix = "interview:session:"

// RedisStore persists sessions in Redis so interviews survive process
// restarts and can be served by multiple replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies reachability before handing
// the store to the controller.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client}, nil
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Get loads and decodes the session blob. Redis expiry shows up as a plain
// miss, so both cases collapse into ErrSessionExpired.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*interview.Session, error) {
	blob, err := s.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var sess interview.Session
	if err := json.Unmarshal(blob, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Set writes the session with the given TTL, refreshing expiry on every save.
func (s *RedisStore) Set(ctx context.Context, sess *interview.Session, ttl time.Duration) error {
	blob, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.ID), blob, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the session key; missing keys are ignored.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping reports store reachability for health checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
