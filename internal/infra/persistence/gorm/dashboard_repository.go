package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"creative-studio/internal/domain"
	"creative-studio/internal/repository"
)

// GormDashboardRepository 是 DashboardRepository 接口的 GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository 创建 GormDashboardRepository 实例
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	if db == nil {
		panic("database connection cannot be nil for GormDashboardRepository")
	}
	return &GormDashboardRepository{db: db}
}

// preloadWidgets 统一组件集合的预加载方式：按创建时间升序
func preloadWidgets(db *gorm.DB) *gorm.DB {
	return db.Preload("Widgets", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC")
	})
}

// FindByOwner 实现查询某个用户拥有的全部画板
func (r *GormDashboardRepository) FindByOwner(ctx context.Context, userID uint) ([]domain.Dashboard, error) {
	var dashboards []domain.Dashboard
	err := preloadWidgets(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Find(&dashboards).Error
	if err != nil {
		// Find 对空结果不会返回 ErrRecordNotFound，返回空 slice 即可
		return nil, fmt.Errorf("gorm: find dashboards by owner %d: %w", userID, err)
	}
	return dashboards, nil
}

// FindByIDAndOwner 实现按 ID 和拥有者查找画板
// 所有权不匹配和画板不存在都映射为同一个 ErrDashboardNotFound。
func (r *GormDashboardRepository) FindByIDAndOwner(ctx context.Context, id, userID uint) (*domain.Dashboard, error) {
	var dashboard domain.Dashboard
	err := preloadWidgets(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&dashboard).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDashboardNotFound
		}
		return nil, fmt.Errorf("gorm: find dashboard %d by owner %d: %w", id, userID, err)
	}
	return &dashboard, nil
}

// ExistsByOwner 实现检查某个用户是否已拥有画板
func (r *GormDashboardRepository) ExistsByOwner(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Dashboard{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count dashboards by owner %d: %w", userID, err)
	}
	return count > 0, nil
}

// Save 实现保存画板信息（创建或更新）
func (r *GormDashboardRepository) Save(ctx context.Context, dashboard *domain.Dashboard) error {
	// Omit 关联，避免 Save 级联写入 Widgets；组件由 WidgetRepository 单独管理
	err := r.db.WithContext(ctx).Omit("Widgets").Save(dashboard).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			// user_id 上的唯一索引：同一用户的第二个画板
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save dashboard (id: %d, user_id: %d): %w", dashboard.ID, dashboard.UserID, err)
	}
	return nil
}

// Delete 实现画板的级联删除。
// 显式地在一个事务中先删子记录再删父记录，而不是依赖 ORM 的隐式级联。
func (r *GormDashboardRepository) Delete(ctx context.Context, dashboard *domain.Dashboard) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dashboard_id = ?", dashboard.ID).Delete(&domain.Widget{}).Error; err != nil {
			return fmt.Errorf("delete widgets of dashboard %d: %w", dashboard.ID, err)
		}
		if err := tx.Delete(&domain.Dashboard{}, dashboard.ID).Error; err != nil {
			return fmt.Errorf("delete dashboard %d: %w", dashboard.ID, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("gorm: cascade delete dashboard %d: %w", dashboard.ID, err)
	}
	return nil
}
