package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"creative-studio/internal/service"
)

// DashboardHandler 封装了与画板相关的 HTTP 处理逻辑
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler 实例
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardRequest 定义创建/重命名画板请求的结构体
type DashboardRequest struct {
	Name string `json:"name" binding:"required"`
}

// List 返回调用方拥有的全部画板
func (h *DashboardHandler) List(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}

	dashboards, err := h.dashboardService.List(c.Request.Context(), email)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	responses := make([]DashboardResponse, 0, len(dashboards))
	for i := range dashboards {
		responses = append(responses, toDashboardResponse(&dashboards[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// Create 处理创建画板的请求
func (h *DashboardHandler) Create(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}

	var req DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateDashboard: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: name is required")
		return
	}

	dashboard, err := h.dashboardService.Create(c.Request.Context(), email, req.Name)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

// Get 返回调用方拥有的指定画板
func (h *DashboardHandler) Get(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.Get(c.Request.Context(), email, dashboardID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

// Update 处理重命名画板的请求
func (h *DashboardHandler) Update(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateDashboard: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: name is required")
		return
	}

	dashboard, err := h.dashboardService.Update(c.Request.Context(), email, dashboardID, req.Name)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

// Delete 处理删除画板的请求 (级联删除其组件)
func (h *DashboardHandler) Delete(c *gin.Context) {
	email, ok := currentUserEmail(c)
	if !ok {
		return
	}
	dashboardID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.dashboardService.Delete(c.Request.Context(), email, dashboardID); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// parseUintParam 解析路径参数中的数字 ID。
// 非法的 ID 与不存在的资源同样返回 404，不区分两种情况。
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "Resource not found")
		return 0, false
	}
	return uint(value), true
}
