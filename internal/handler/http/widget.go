package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"creative-studio/internal/service"
)

// WidgetHandler 封装了与组件相关的 HTTP 处理逻辑
type WidgetHandler struct {
	widgetService *service.WidgetService
}

// NewWidgetHandler 创建 WidgetHandler 实例
func NewWidgetHandler(widgetService *service.WidgetService) *WidgetHandler {
	return &WidgetHandler{widgetService: widgetService}
}

// WidgetRequest 定义创建/更新组件请求的结构体。
// Width/Height 为指针：缺省时由 Service 层填入默认值 400。
type WidgetRequest struct {
	Type   string                 `json:"type" binding:"required"`
	Name   string                 `json:"name"`
	X      int                    `json:"x"`
	Y      int                    `json:"y"`
	Width  *int                   `json:"width"`
	Height *int                   `json:"height"`
	Data   map[string]interface{} `json:"data"`
}

// toInput 把请求体转换为 Service 层输入
func (r *WidgetRequest) toInput() service.WidgetInput {
	return service.WidgetInput{
		Type:   r.Type,
		Name:   r.Name,
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Data:   datatypes.JSONMap(r.Data),
	}
}

// List 返回画板的全部组件，按创建时间升序
func (h *WidgetHandler) List(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	widgets, err := h.widgetService.List(c.Request.Context(), email, dashboardID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWidgetResponses(widgets))
}

// Create 处理在画板上创建组件的请求
func (h *WidgetHandler) Create(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req WidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateWidget: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: type is required")
		return
	}

	widget, err := h.widgetService.Create(c.Request.Context(), email, dashboardID, req.toInput())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWidgetResponse(widget))
}

// Update 处理组件可变字段的全量替换
func (h *WidgetHandler) Update(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	widgetID, ok := parseUintParam(c, "widgetId")
	if !ok {
		return
	}

	var req WidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateWidget: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: type is required")
		return
	}

	widget, err := h.widgetService.Update(c.Request.Context(), email, dashboardID, widgetID, req.toInput())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWidgetResponse(widget))
}

// UpdateData 处理组件 JSON 负载的部分更新 (PATCH)。
// 请求体就是任意 JSON 对象，只替换 data 字段，几何/类型/名称不动。
func (h *WidgetHandler) UpdateData(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	widgetID, ok := parseUintParam(c, "widgetId")
	if !ok {
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateWidgetData: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: body must be a JSON object")
		return
	}

	widget, err := h.widgetService.UpdateData(c.Request.Context(), email, dashboardID, widgetID, datatypes.JSONMap(data))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWidgetResponse(widget))
}

// Delete 处理删除组件的请求
func (h *WidgetHandler) Delete(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	widgetID, ok := parseUintParam(c, "widgetId")
	if !ok {
		return
	}

	if err := h.widgetService.Delete(c.Request.Context(), email, dashboardID, widgetID); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
