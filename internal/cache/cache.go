// Package cache keeps generated question sets so repeated requests for the
// same article text skip the generation service.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores generated questions keyed by a content hash.
type Cache interface {
	// GetQuestions returns the cached questions for a key, or "" on miss.
	GetQuestions(ctx context.Context, key string) (string, error)

	// SetQuestions stores generated questions with a TTL.
	SetQuestions(ctx context.Context, key, questions string, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives the cache key for a block of article text.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
