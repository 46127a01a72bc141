package store

import (
	"context"
	"errors"

	"studydesk/internal/content"
)

var ErrRecordNotFound = errors.New("record not found")

// Store persists one aggregate record per document key. Put upserts: a
// repeated search for an equivalent topic overwrites the prior document.
// An external DB implementation can replace this.
type Store interface {
	Put(ctx context.Context, record content.Record) error
	Get(ctx context.Context, key string) (content.Record, error)
}
