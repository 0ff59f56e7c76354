package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"creative-studio/internal/domain"
)

// ErrorResponse 以统一的 JSON 形式返回错误
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// WidgetResponse 是组件的对外响应结构
type WidgetResponse struct {
	ID        uint              `json:"id"`
	Type      string            `json:"type"`
	Name      string            `json:"name,omitempty"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	ZIndex    int               `json:"zIndex"`
	Data      datatypes.JSONMap `json:"data"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DashboardResponse 是画板的对外响应结构，总是携带完整的组件集合
type DashboardResponse struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	GridSize  int              `json:"gridSize"`
	Widgets   []WidgetResponse `json:"widgets"`
	CreatedAt time.Time        `json:"createdAt"`
}

// toWidgetResponse 把组件实体映射为响应结构
func toWidgetResponse(w *domain.Widget) WidgetResponse {
	return WidgetResponse{
		ID:        w.ID,
		Type:      w.Type,
		Name:      w.Name,
		X:         w.X,
		Y:         w.Y,
		Width:     w.Width,
		Height:    w.Height,
		ZIndex:    w.ZIndex,
		Data:      w.Data,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// toWidgetResponses 映射组件集合；返回空 slice 而不是 nil，保证 JSON 输出 []
func toWidgetResponses(widgets []domain.Widget) []WidgetResponse {
	out := make([]WidgetResponse, 0, len(widgets))
	for i := range widgets {
		out = append(out, toWidgetResponse(&widgets[i]))
	}
	return out
}

// toDashboardResponse 把画板实体 (含组件) 映射为响应结构
func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		ID:        d.ID,
		Name:      d.Name,
		GridSize:  d.GridSize,
		Widgets:   toWidgetResponses(d.Widgets),
		CreatedAt: d.CreatedAt,
	}
}
