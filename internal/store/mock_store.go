package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studydesk/internal/content"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, record content.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, key string) (content.Record, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(content.Record), args.Error(1)
}
