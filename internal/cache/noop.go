package cache

import (
	"context"
	"time"
)

// NoOpCache does nothing. Used when no Redis address is configured - every
// lookup is a miss and every write succeeds silently.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetQuestions(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (c *NoOpCache) SetQuestions(ctx context.Context, key, questions string, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
