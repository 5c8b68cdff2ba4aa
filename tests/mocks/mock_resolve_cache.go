package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockResolveCache struct {
	mock.Mock
}

func (m *MockResolveCache) IsMiss(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockResolveCache) MarkMiss(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

func (m *MockResolveCache) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
