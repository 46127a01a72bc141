package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const questionKeyPrefix = "questions:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client and verifies the connection.
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetQuestions(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, questionKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *RedisCache) SetQuestions(ctx context.Context, key, questions string, ttl time.Duration) error {
	return c.client.Set(ctx, questionKeyPrefix+key, questions, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
