package mocks

import (
	"context"

	"linkcut/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockClickRepository struct {
	mock.Mock
}

func (m *MockClickRepository) RecordClick(ctx context.Context, click *domain.ClickRequest) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockClickRepository) Stats(ctx context.Context, shortURLID int64, days int) (*domain.LinkStats, error) {
	args := m.Called(ctx, shortURLID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkStats), args.Error(1)
}
