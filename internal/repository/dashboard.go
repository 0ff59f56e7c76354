package repository

import (
	"context"

	"creative-studio/internal/domain"
)

// DashboardRepository 定义了画板数据的存储和检索操作。
// 所有查询都以拥有者为范围：找不到和不属于该用户在结果上不可区分，
// 避免向调用方泄露其他用户画板的存在。
type DashboardRepository interface {
	// FindByOwner 查询某个用户拥有的全部画板 (预加载组件集合)。
	FindByOwner(ctx context.Context, userID uint) ([]domain.Dashboard, error)

	// FindByIDAndOwner 根据画板 ID 和拥有者 ID 查找画板 (预加载组件集合)。
	// 画板不存在或不属于该用户时，返回 repository.ErrDashboardNotFound。
	FindByIDAndOwner(ctx context.Context, id, userID uint) (*domain.Dashboard, error)

	// ExistsByOwner 检查某个用户是否已拥有画板。
	ExistsByOwner(ctx context.Context, userID uint) (bool, error)

	// Save 保存画板信息（创建或更新）。
	// 违反唯一约束 (同一用户的第二个画板) 时返回 repository.ErrDuplicateEntry。
	Save(ctx context.Context, dashboard *domain.Dashboard) error

	// Delete 在一个事务中先删除画板的全部组件，再删除画板本身。
	Delete(ctx context.Context, dashboard *domain.Dashboard) error
}
