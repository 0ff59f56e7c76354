package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"creative-studio/internal/domain"
	"creative-studio/internal/repository"
)

// GormWidgetRepository 是 WidgetRepository 接口的 GORM 实现
type GormWidgetRepository struct {
	db *gorm.DB
}

// NewGormWidgetRepository 创建 GormWidgetRepository 实例
func NewGormWidgetRepository(db *gorm.DB) *GormWidgetRepository {
	if db == nil {
		panic("database connection cannot be nil for GormWidgetRepository")
	}
	return &GormWidgetRepository{db: db}
}

// FindByDashboard 实现查询某个画板的全部组件，按创建时间升序
func (r *GormWidgetRepository) FindByDashboard(ctx context.Context, dashboardID uint) ([]domain.Widget, error) {
	var widgets []domain.Widget
	err := r.db.WithContext(ctx).
		Where("dashboard_id = ?", dashboardID).
		Order("created_at ASC").
		Find(&widgets).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find widgets by dashboard %d: %w", dashboardID, err)
	}
	return widgets, nil
}

// FindByIDAndDashboard 实现按组件 ID 和所属画板查找组件。
// 查询同时约束 dashboard_id，属于其他画板的组件 ID 与不存在不可区分。
func (r *GormWidgetRepository) FindByIDAndDashboard(ctx context.Context, id, dashboardID uint) (*domain.Widget, error) {
	var widget domain.Widget
	err := r.db.WithContext(ctx).
		Where("id = ? AND dashboard_id = ?", id, dashboardID).
		First(&widget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWidgetNotFound
		}
		return nil, fmt.Errorf("gorm: find widget %d in dashboard %d: %w", id, dashboardID, err)
	}
	return &widget, nil
}

// Save 实现保存组件信息（创建或更新）
func (r *GormWidgetRepository) Save(ctx context.Context, widget *domain.Widget) error {
	err := r.db.WithContext(ctx).Save(widget).Error
	if err != nil {
		return fmt.Errorf("gorm: save widget (id: %d, dashboard_id: %d): %w", widget.ID, widget.DashboardID, err)
	}
	return nil
}

// Delete 实现删除单个组件
func (r *GormWidgetRepository) Delete(ctx context.Context, widget *domain.Widget) error {
	err := r.db.WithContext(ctx).Delete(&domain.Widget{}, widget.ID).Error
	if err != nil {
		return fmt.Errorf("gorm: delete widget %d: %w", widget.ID, err)
	}
	return nil
}
