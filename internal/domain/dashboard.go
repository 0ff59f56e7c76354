package domain

import "time"

// DefaultGridSize 是新建画板的默认网格大小，仅供前端吸附对齐使用，服务端不做强制。
const DefaultGridSize = 40

// Dashboard 表示一个用户拥有的画板。
// UserID 上的唯一索引保证每个用户最多拥有一个画板。
type Dashboard struct {
	ID        uint      `gorm:"primaryKey"`                          // 画板唯一标识符 (主键)
	UserID    uint      `gorm:"uniqueIndex:idx_dashboard_user;not null"` // 拥有者用户 ID (外键关联到 User.ID)
	Name      string    `gorm:"type:varchar(191);not null"`          // 画板显示名称
	GridSize  int       `gorm:"not null;default:40"`                 // 网格大小，默认 40
	Widgets   []Widget  `gorm:"foreignKey:DashboardID"`              // 画板包含的组件集合
	CreatedAt time.Time `gorm:"autoCreateTime"`                      // 画板创建时间 (GORM 自动填充)
	UpdatedAt time.Time `gorm:"autoUpdateTime"`                      // 记录最后更新时间 (GORM 自动填充)
}
