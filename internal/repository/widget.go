package repository

import (
	"context"

	"creative-studio/internal/domain"
)

// WidgetRepository 定义了组件数据的存储和检索操作。
// 单个组件的查找总是同时带上画板 ID，保证组件操作不会越过画板边界。
type WidgetRepository interface {
	// FindByDashboard 查询某个画板的全部组件，按创建时间升序排列。
	FindByDashboard(ctx context.Context, dashboardID uint) ([]domain.Widget, error)

	// FindByIDAndDashboard 根据组件 ID 和所属画板 ID 查找组件。
	// 组件不存在或不属于该画板时，返回 repository.ErrWidgetNotFound。
	FindByIDAndDashboard(ctx context.Context, id, dashboardID uint) (*domain.Widget, error)

	// Save 保存组件信息（创建或更新）。
	Save(ctx context.Context, widget *domain.Widget) error

	// Delete 删除单个组件。
	Delete(ctx context.Context, widget *domain.Widget) error
}
