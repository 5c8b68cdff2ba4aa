package mocks

import (
	"context"

	"linkcut/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockURLRepository struct {
	mock.Mock
}

func (m *MockURLRepository) Insert(ctx context.Context, u *domain.ShortURL) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockURLRepository) GetByKey(ctx context.Context, key string) (*domain.ShortURL, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) GetBySecretKey(ctx context.Context, secretKey string) (*domain.ShortURL, error) {
	args := m.Called(ctx, secretKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) ResolveAndCount(ctx context.Context, key string) (*domain.ShortURL, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) SetActive(ctx context.Context, secretKey string, active bool) (*domain.ShortURL, error) {
	args := m.Called(ctx, secretKey, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.ShortURL, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShortURL), args.Error(1)
}
