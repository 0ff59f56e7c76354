package service

import "errors"

// 业务层错误。Handler 层根据这些错误决定 HTTP 状态码。
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrDashboardNotFound    = errors.New("dashboard not found")
	ErrDashboardExists      = errors.New("user already owns a dashboard")
	ErrWidgetNotFound       = errors.New("widget not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternalServer       = errors.New("internal server error")
)
