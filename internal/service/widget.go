package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"creative-studio/internal/domain"
	"creative-studio/internal/repository"
)

// WidgetInput 是创建和全量更新组件时的输入。
// Width/Height 使用指针以区分 "未提供" 和显式的 0：未提供时使用默认值 400。
type WidgetInput struct {
	Type   string
	Name   string
	X      int
	Y      int
	Width  *int
	Height *int
	Data   datatypes.JSONMap
}

// WidgetService 负责组件的 CRUD。
// 每个操作都先把调用方身份解析为用户，再校验其对路径中画板的所有权，
// 之后组件查找始终带上画板 ID，不会接受属于其他画板的组件。
type WidgetService struct {
	widgetRepo    repository.WidgetRepository
	dashboardRepo repository.DashboardRepository
	userRepo      repository.UserRepository
}

// NewWidgetService 创建 WidgetService 实例。
func NewWidgetService(widgetRepo repository.WidgetRepository, dashboardRepo repository.DashboardRepository, userRepo repository.UserRepository) *WidgetService {
	if widgetRepo == nil || dashboardRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for WidgetService")
	}
	return &WidgetService{
		widgetRepo:    widgetRepo,
		dashboardRepo: dashboardRepo,
		userRepo:      userRepo,
	}
}

// List 返回指定画板的全部组件，按创建时间升序。
func (s *WidgetService) List(ctx context.Context, email string, dashboardID uint) ([]domain.Widget, error) {
	dashboard, err := s.resolveOwnedDashboard(ctx, email, dashboardID)
	if err != nil {
		return nil, err
	}

	widgets, err := s.widgetRepo.FindByDashboard(ctx, dashboard.ID)
	if err != nil {
		logrus.WithError(err).WithField("dashboard_id", dashboard.ID).Error("Failed to list widgets")
		return nil, ErrInternalServer
	}
	return widgets, nil
}

// Create 在指定画板上创建组件。
// Type 为必填；宽高未提供时使用默认值 400×400；堆叠顺序留给存储层默认值 0。
func (s *WidgetService) Create(ctx context.Context, email string, dashboardID uint, input WidgetInput) (*domain.Widget, error) {
	if input.Type == "" {
		return nil, ErrInvalidInput
	}

	dashboard, err := s.resolveOwnedDashboard(ctx, email, dashboardID)
	if err != nil {
		return nil, err
	}

	widget := &domain.Widget{
		DashboardID: dashboard.ID,
		Type:        input.Type,
		Name:        input.Name,
		X:           input.X,
		Y:           input.Y,
		Width:       geometryOrDefault(input.Width, domain.DefaultWidgetWidth),
		Height:      geometryOrDefault(input.Height, domain.DefaultWidgetHeight),
		Data:        input.Data,
	}
	if err := s.widgetRepo.Save(ctx, widget); err != nil {
		logrus.WithError(err).WithField("dashboard_id", dashboard.ID).Error("Failed to save new widget")
		return nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"dashboard_id": dashboard.ID, "widget_id": widget.ID, "type": widget.Type}).Info("Widget created successfully")
	return widget, nil
}

// Update 全量替换组件的可变字段 (类型、名称、几何、负载)。
func (s *WidgetService) Update(ctx context.Context, email string, dashboardID, widgetID uint, input WidgetInput) (*domain.Widget, error) {
	if input.Type == "" {
		return nil, ErrInvalidInput
	}

	widget, err := s.resolveOwnedWidget(ctx, email, dashboardID, widgetID)
	if err != nil {
		return nil, err
	}

	widget.Type = input.Type
	widget.Name = input.Name
	widget.X = input.X
	widget.Y = input.Y
	widget.Width = geometryOrDefault(input.Width, domain.DefaultWidgetWidth)
	widget.Height = geometryOrDefault(input.Height, domain.DefaultWidgetHeight)
	widget.Data = input.Data

	if err := s.widgetRepo.Save(ctx, widget); err != nil {
		logrus.WithError(err).WithField("widget_id", widget.ID).Error("Failed to update widget")
		return nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"dashboard_id": dashboardID, "widget_id": widget.ID}).Info("Widget updated successfully")
	return widget, nil
}

// UpdateData 只替换组件的 JSON 负载，几何、类型和名称保持不变。
func (s *WidgetService) UpdateData(ctx context.Context, email string, dashboardID, widgetID uint, data datatypes.JSONMap) (*domain.Widget, error) {
	widget, err := s.resolveOwnedWidget(ctx, email, dashboardID, widgetID)
	if err != nil {
		return nil, err
	}

	widget.Data = data
	if err := s.widgetRepo.Save(ctx, widget); err != nil {
		logrus.WithError(err).WithField("widget_id", widget.ID).Error("Failed to update widget data")
		return nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"dashboard_id": dashboardID, "widget_id": widget.ID}).Info("Widget data updated successfully")
	return widget, nil
}

// Delete 删除指定组件。
func (s *WidgetService) Delete(ctx context.Context, email string, dashboardID, widgetID uint) error {
	widget, err := s.resolveOwnedWidget(ctx, email, dashboardID, widgetID)
	if err != nil {
		return err
	}

	if err := s.widgetRepo.Delete(ctx, widget); err != nil {
		logrus.WithError(err).WithField("widget_id", widget.ID).Error("Failed to delete widget")
		return ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"dashboard_id": dashboardID, "widget_id": widgetID}).Info("Widget deleted successfully")
	return nil
}

// resolveOwnedDashboard 解析调用方身份并校验其对画板的所有权。
// 所有权校验先于组件查找，画板不属于调用方时组件 ID 根本不会被查询。
func (s *WidgetService) resolveOwnedDashboard(ctx context.Context, email string, dashboardID uint) (*domain.Dashboard, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logrus.WithField("email", email).Warn("Identity resolution failed: user not found")
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("email", email).Error("Identity resolution failed: repository error")
		return nil, ErrInternalServer
	}

	dashboard, err := s.dashboardRepo.FindByIDAndOwner(ctx, dashboardID, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDashboardNotFound) {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "dashboard_id": dashboardID}).Warn("Dashboard not found or not owned by caller")
			return nil, ErrDashboardNotFound
		}
		logrus.WithError(err).WithField("dashboard_id", dashboardID).Error("Failed to find dashboard")
		return nil, ErrInternalServer
	}
	return dashboard, nil
}

// resolveOwnedWidget 在所有权校验之后按 (组件 ID, 画板 ID) 查找组件
func (s *WidgetService) resolveOwnedWidget(ctx context.Context, email string, dashboardID, widgetID uint) (*domain.Widget, error) {
	dashboard, err := s.resolveOwnedDashboard(ctx, email, dashboardID)
	if err != nil {
		return nil, err
	}

	widget, err := s.widgetRepo.FindByIDAndDashboard(ctx, widgetID, dashboard.ID)
	if err != nil {
		if errors.Is(err, repository.ErrWidgetNotFound) {
			logrus.WithFields(logrus.Fields{"dashboard_id": dashboard.ID, "widget_id": widgetID}).Warn("Widget not found in dashboard")
			return nil, ErrWidgetNotFound
		}
		logrus.WithError(err).WithField("widget_id", widgetID).Error("Failed to find widget")
		return nil, ErrInternalServer
	}
	return widget, nil
}

// geometryOrDefault 返回调用方提供的尺寸，未提供时返回默认值
func geometryOrDefault(value *int, def int) int {
	if value == nil {
		return def
	}
	return *value
}
