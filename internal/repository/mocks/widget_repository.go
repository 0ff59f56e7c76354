package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"creative-studio/internal/domain"
)

// WidgetRepository 是 repository.WidgetRepository 的 Mock 实现
type WidgetRepository struct{ mock.Mock }

func (m *WidgetRepository) FindByDashboard(ctx context.Context, dashboardID uint) ([]domain.Widget, error) {
	args := m.Called(ctx, dashboardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Widget), args.Error(1)
}

func (m *WidgetRepository) FindByIDAndDashboard(ctx context.Context, id, dashboardID uint) (*domain.Widget, error) {
	args := m.Called(ctx, id, dashboardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Widget), args.Error(1)
}

func (m *WidgetRepository) Save(ctx context.Context, widget *domain.Widget) error {
	return m.Called(ctx, widget).Error(0)
}

func (m *WidgetRepository) Delete(ctx context.Context, widget *domain.Widget) error {
	return m.Called(ctx, widget).Error(0)
}
