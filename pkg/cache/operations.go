package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"geocortex/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// Store implements CacheOperations on a Redis client, storing values as JSON.
type Store struct {
	client redis.Cmdable
}

func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// store a value under key with the given expiration. Zero means no expiry.
func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	start := time.Now()
	data, err := json.Marshal(value)
	if err != nil {
		IncrementError("set_marshal")
		logger.GlobalLogger.Errorf("failed to marshal value for key %s: %v", key, err)
		return NewCacheError("marshal", err, false)
	}
	err = s.client.Set(ctx, key, data, expiration).Err()
	RecordOperationDuration("set", start)
	if err != nil {
		IncrementError("set")
		logger.GlobalLogger.Errorf("failed to set key %s: %v", key, err)
		return NewCacheError("set", err, true)
	}
	return nil
}

// load key and unmarshal it into dest. A missing key yields ErrMiss.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Bytes()
	RecordOperationDuration("get", start)
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		IncrementError("get")
		logger.GlobalLogger.Errorf("failed to get key %s: %v", key, err)
		return NewCacheError("get", err, true)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		IncrementError("get_unmarshal")
		logger.GlobalLogger.Errorf("failed to unmarshal value for key %s: %v", key, err)
		return NewCacheError("unmarshal", err, false)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	start := time.Now()
	err := s.client.Del(ctx, keys...).Err()
	RecordOperationDuration("delete", start)
	if err != nil {
		IncrementError("delete")
		logger.GlobalLogger.Errorf("failed to delete keys %v: %v", keys, err)
		return NewCacheError("delete", err, true)
	}
	return nil
}

// Incr atomically increments the counter at key.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	n, err := s.client.Incr(ctx, key).Result()
	RecordOperationDuration("incr", start)
	if err != nil {
		IncrementError("incr")
		logger.GlobalLogger.Errorf("failed to increment key %s: %v", key, err)
		return 0, NewCacheError("incr", err, true)
	}
	return n, nil
}

// GetInt reads a counter. A missing key reads as zero.
func (s *Store) GetInt(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	n, err := s.client.Get(ctx, key).Int64()
	RecordOperationDuration("get", start)
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		IncrementError("get")
		logger.GlobalLogger.Errorf("failed to get counter %s: %v", key, err)
		return 0, NewCacheError("get", err, true)
	}
	return n, nil
}
