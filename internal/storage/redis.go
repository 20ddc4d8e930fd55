package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisStore keeps values as plain redis strings under a key prefix, so
// several web shell instances can share one signed-in session.
type redisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    zerolog.Logger
}

// NewRedisStore creates a redis-backed store. The client is pinged once so a
// bad address fails at startup rather than on the first page load.
func NewRedisStore(ctx context.Context, client *redis.Client, keyPrefix string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "redis-storage").Logger()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error().Err(err).Str("addr", client.Options().Addr).Msg("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisStore{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}, nil
}

func (s *redisStore) key(key string) string {
	return s.keyPrefix + key
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read storage key")
		return "", false, fmt.Errorf("failed to read storage key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write storage key")
		return fmt.Errorf("failed to write storage key %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to remove storage key")
		return fmt.Errorf("failed to remove storage key %s: %w", key, err)
	}
	return nil
}
