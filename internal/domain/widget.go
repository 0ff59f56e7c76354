package domain

import (
	"time"

	"gorm.io/datatypes"
)

// 组件的默认几何尺寸，创建时调用方未提供宽高则使用该值。
const (
	DefaultWidgetWidth  = 400
	DefaultWidgetHeight = 400
)

// Widget 表示画板上的一个组件：带位置和尺寸的面板，内容是任意 JSON。
// 组件的生命周期由其所属画板决定，画板删除时组件一并删除。
type Widget struct {
	ID          uint              `gorm:"primaryKey"`                          // 组件唯一标识符 (主键)
	DashboardID uint              `gorm:"index:idx_widget_dashboard;not null"` // 所属画板 ID (外键关联到 Dashboard.ID)
	Type        string            `gorm:"type:varchar(64);not null"`           // 组件类型标签，自由字符串 (例如 "note", "image")
	Name        string            `gorm:"type:varchar(191)"`                   // 组件显示名称 (可选)
	X           int               `gorm:"not null;default:0"`                  // 横坐标
	Y           int               `gorm:"not null;default:0"`                  // 纵坐标
	Width       int               `gorm:"not null;default:400"`                // 宽度
	Height      int               `gorm:"not null;default:400"`                // 高度
	ZIndex      int               `gorm:"column:z_index;not null;default:0"`   // 堆叠顺序，存储层默认 0
	Data        datatypes.JSONMap `gorm:"type:json"`                           // 任意键值 JSON 负载 (可为空)
	CreatedAt   time.Time         `gorm:"autoCreateTime"`                      // 组件创建时间 (GORM 自动填充)
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`                      // 组件最后更新时间 (GORM 自动填充)
}
