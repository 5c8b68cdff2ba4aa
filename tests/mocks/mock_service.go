package mocks

import (
	"context"

	"linkcut/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockShortenerService struct {
	mock.Mock
}

func (m *MockShortenerService) CreateBatch(ctx context.Context, ownerID string, rawURLs []string) (*domain.BatchResult, error) {
	args := m.Called(ctx, ownerID, rawURLs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockShortenerService) Resolve(ctx context.Context, key string, click *domain.ClickRequest) (*domain.ShortURL, error) {
	args := m.Called(ctx, key, click)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockShortenerService) ListOwned(ctx context.Context, ownerID string) ([]domain.ShortURL, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShortURL), args.Error(1)
}

func (m *MockShortenerService) SetActive(ctx context.Context, ownerID, secretKey string, active bool) (*domain.ShortURL, error) {
	args := m.Called(ctx, ownerID, secretKey, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockShortenerService) Stats(ctx context.Context, ownerID, secretKey string, days int) (*domain.LinkStats, error) {
	args := m.Called(ctx, ownerID, secretKey, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkStats), args.Error(1)
}
