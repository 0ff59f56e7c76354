package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"creative-studio/internal/domain"
	"creative-studio/internal/repository"
)

// DashboardService 负责画板的所有权范围 CRUD。
// 每个操作都显式接收调用方身份 (邮箱)，先解析为用户记录，再以拥有者为范围操作。
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	userRepo      repository.UserRepository
}

// NewDashboardService 创建 DashboardService 实例。
func NewDashboardService(dashboardRepo repository.DashboardRepository, userRepo repository.UserRepository) *DashboardService {
	if dashboardRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for DashboardService")
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		userRepo:      userRepo,
	}
}

// List 返回调用方拥有的全部画板 (当前数据模型下最多一个)。
func (s *DashboardService) List(ctx context.Context, email string) ([]domain.Dashboard, error) {
	user, err := s.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}

	dashboards, err := s.dashboardRepo.FindByOwner(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("Failed to list dashboards")
		return nil, ErrInternalServer
	}
	return dashboards, nil
}

// Create 为调用方创建画板。
// 每个用户最多拥有一个画板：已拥有时返回 ErrDashboardExists。
func (s *DashboardService) Create(ctx context.Context, email, name string) (*domain.Dashboard, error) {
	logCtx := logrus.WithField("email", email)

	if name == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}
	logCtx = logCtx.WithField("user_id", user.ID)

	// 1. 检查该用户是否已拥有画板
	exists, err := s.dashboardRepo.ExistsByOwner(ctx, user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Database error checking dashboard ownership")
		return nil, ErrInternalServer
	}
	if exists {
		logCtx.Warn("Dashboard creation rejected: user already owns a dashboard")
		return nil, ErrDashboardExists
	}

	// 2. 创建画板对象并保存
	dashboard := &domain.Dashboard{
		UserID:   user.ID,
		Name:     name,
		GridSize: domain.DefaultGridSize,
	}
	if err := s.dashboardRepo.Save(ctx, dashboard); err != nil {
		// 并发的第二次创建由 user_id 唯一约束兜底
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Dashboard creation rejected: duplicate entry on save")
			return nil, ErrDashboardExists
		}
		logCtx.WithError(err).Error("Failed to save new dashboard")
		return nil, ErrInternalServer
	}

	logCtx.WithField("dashboard_id", dashboard.ID).Info("Dashboard created successfully")
	return dashboard, nil
}

// Get 返回调用方拥有的指定画板。
// 画板不存在和不属于调用方都返回 ErrDashboardNotFound。
func (s *DashboardService) Get(ctx context.Context, email string, dashboardID uint) (*domain.Dashboard, error) {
	user, err := s.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.findOwned(ctx, dashboardID, user.ID)
}

// Update 重命名调用方拥有的指定画板。
func (s *DashboardService) Update(ctx context.Context, email string, dashboardID uint, name string) (*domain.Dashboard, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.resolveUser(ctx, email)
	if err != nil {
		return nil, err
	}

	dashboard, err := s.findOwned(ctx, dashboardID, user.ID)
	if err != nil {
		return nil, err
	}

	dashboard.Name = name
	if err := s.dashboardRepo.Save(ctx, dashboard); err != nil {
		logrus.WithError(err).WithField("dashboard_id", dashboardID).Error("Failed to update dashboard")
		return nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "dashboard_id": dashboardID}).Info("Dashboard updated successfully")
	return dashboard, nil
}

// Delete 删除调用方拥有的指定画板，并级联删除其全部组件。
func (s *DashboardService) Delete(ctx context.Context, email string, dashboardID uint) error {
	user, err := s.resolveUser(ctx, email)
	if err != nil {
		return err
	}

	dashboard, err := s.findOwned(ctx, dashboardID, user.ID)
	if err != nil {
		return err
	}

	if err := s.dashboardRepo.Delete(ctx, dashboard); err != nil {
		logrus.WithError(err).WithField("dashboard_id", dashboardID).Error("Failed to delete dashboard")
		return ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "dashboard_id": dashboardID}).Info("Dashboard deleted successfully")
	return nil
}

// resolveUser 把调用方身份 (邮箱) 绑定到完整的用户记录
func (s *DashboardService) resolveUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logrus.WithField("email", email).Warn("Identity resolution failed: user not found")
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("email", email).Error("Identity resolution failed: repository error")
		return nil, ErrInternalServer
	}
	if user == nil { // 防御
		return nil, ErrUserNotFound
	}
	return user, nil
}

// findOwned 以拥有者为范围查找画板
func (s *DashboardService) findOwned(ctx context.Context, dashboardID, userID uint) (*domain.Dashboard, error) {
	dashboard, err := s.dashboardRepo.FindByIDAndOwner(ctx, dashboardID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDashboardNotFound) {
			logrus.WithFields(logrus.Fields{"user_id": userID, "dashboard_id": dashboardID}).Warn("Dashboard not found or not owned by caller")
			return nil, ErrDashboardNotFound
		}
		logrus.WithError(err).WithField("dashboard_id", dashboardID).Error("Failed to find dashboard")
		return nil, ErrInternalServer
	}
	if dashboard == nil { // 防御
		return nil, ErrDashboardNotFound
	}
	return dashboard, nil
}
