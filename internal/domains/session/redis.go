package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"voiceqa/internal/config"
)

const redisKeyPrefix = "voiceqa:context:"

// RedisStore keeps session contexts in redis with the TTL applied as key
// expiry, for deployments where the service runs more than one replica.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Pass,
		DB:       0,
	})
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Put(_ context.Context, sessionID, transcription string) error {
	return s.client.Set(redisKeyPrefix+sessionID, transcription, s.ttl).Err()
}

func (s *RedisStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	val, err := s.client.Get(redisKeyPrefix + sessionID).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (s *RedisStore) Exists(_ context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(redisKeyPrefix + sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
