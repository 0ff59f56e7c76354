// Package http 封装 HTTP 处理逻辑：请求绑定、调用 Service、响应映射。
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"creative-studio/internal/middleware"
	"creative-studio/internal/service"
)

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest 定义注册请求的结构体
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 定义登录请求的结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 定义认证成功的响应结构体：凭证加公开的用户信息
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	// 1. 绑定并验证输入 JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Register: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: name, email and password are required")
		return
	}

	// 2. 调用 Service 层处理注册逻辑
	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 3. 注册成功响应 (不含密码等敏感信息)
	logrus.WithField("user_id", user.ID).Info("Handler.Register: User registered successfully")
	c.JSON(http.StatusOK, AuthResponse{
		Token:  token,
		UserID: strconv.FormatUint(uint64(user.ID), 10),
		Name:   user.Username,
		Email:  user.Email,
	})
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	// 1. 绑定并验证输入 JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: email and password required")
		return
	}

	// 2. 调用 Service 层处理登录逻辑
	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 3. 登录成功响应
	logrus.WithField("email", req.Email).Info("Handler.Login: User logged in successfully")
	c.JSON(http.StatusOK, AuthResponse{
		Token:  token,
		UserID: strconv.FormatUint(uint64(user.ID), 10),
		Name:   user.Username,
		Email:  user.Email,
	})
}

// currentUserEmail 从 Gin 上下文读取认证中间件写入的调用方邮箱。
// 返回 false 表示中间件缺失或失败，调用方应立即返回 401。
func currentUserEmail(c *gin.Context) (string, bool) {
	emailAny, exists := c.Get(middleware.ContextUserEmail)
	if !exists {
		logrus.Warn("Handler: user email not found in context, middleware missing or failed?")
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	email, ok := emailAny.(string)
	if !ok || email == "" {
		logrus.Error("Handler: user email in context is not a valid string")
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	return email, true
}
