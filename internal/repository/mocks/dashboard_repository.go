package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"creative-studio/internal/domain"
)

// DashboardRepository 是 repository.DashboardRepository 的 Mock 实现
type DashboardRepository struct{ mock.Mock }

func (m *DashboardRepository) FindByOwner(ctx context.Context, userID uint) ([]domain.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dashboard), args.Error(1)
}

func (m *DashboardRepository) FindByIDAndOwner(ctx context.Context, id, userID uint) (*domain.Dashboard, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *DashboardRepository) ExistsByOwner(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *DashboardRepository) Save(ctx context.Context, dashboard *domain.Dashboard) error {
	return m.Called(ctx, dashboard).Error(0)
}

func (m *DashboardRepository) Delete(ctx context.Context, dashboard *domain.Dashboard) error {
	return m.Called(ctx, dashboard).Error(0)
}
