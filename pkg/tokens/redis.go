package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/redis/go-redis/v9"
)

const (
	// RedisKeyPrefix namespaces the token keys in a shared Redis.
	RedisKeyPrefix = "seafarer:token:"

	redisTimeout = 5 * time.Second
)

var _ Store = &RedisStore{}

// RedisStore persists values in Redis without expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %v", err)
	}

	return &RedisStore{
		client: client,
	}, nil
}

func (s *RedisStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	value, err := s.client.Get(ctx, RedisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		log.Error("Failed to get token %s from redis: %v", key, err)
		return "", false
	}
	return value, true
}

func (s *RedisStore) Set(key string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, RedisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set token in redis: %v", err)
	}
	return nil
}

func (s *RedisStore) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Del(ctx, RedisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove token from redis: %v", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
