package service_test // 测试包

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"creative-studio/internal/domain"
	"creative-studio/internal/repository"
	"creative-studio/internal/repository/mocks"
	"creative-studio/internal/service"
)

// newWidgetService 构造一个带 Mock 仓库的 WidgetService
func newWidgetService() (*service.WidgetService, *mocks.WidgetRepository, *mocks.DashboardRepository, *mocks.UserRepository) {
	mockWidgetRepo := new(mocks.WidgetRepository)
	mockDashboardRepo := new(mocks.DashboardRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewWidgetService(mockWidgetRepo, mockDashboardRepo, mockUserRepo)
	return svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo
}

// expectOwnedDashboard 设置身份解析和所有权校验的公共 Mock 预期
func expectOwnedDashboard(mockUserRepo *mocks.UserRepository, mockDashboardRepo *mocks.DashboardRepository, ctx context.Context, email string) (*domain.User, *domain.Dashboard) {
	user := &domain.User{ID: 7, Username: "alice", Email: email}
	dashboard := &domain.Dashboard{ID: 3, UserID: user.ID, Name: "Board1"}
	mockUserRepo.On("FindByEmail", ctx, email).Return(user, nil).Once()
	mockDashboardRepo.On("FindByIDAndOwner", ctx, dashboard.ID, user.ID).Return(dashboard, nil).Once()
	return user, dashboard
}

// 创建组件时未提供宽高，应使用默认值 400×400。
func TestWidgetService_Create_DefaultGeometry(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "alice@example.com"
	_, dashboard := expectOwnedDashboard(mockUserRepo, mockDashboardRepo, ctx, email)

	mockWidgetRepo.On("Save", ctx, mock.MatchedBy(func(w *domain.Widget) bool {
		assert.Equal(t, dashboard.ID, w.DashboardID)
		assert.Equal(t, "note", w.Type)
		assert.Equal(t, 10, w.X)
		assert.Equal(t, 20, w.Y)
		assert.Equal(t, domain.DefaultWidgetWidth, w.Width, "未提供宽度时应使用默认值")
		assert.Equal(t, domain.DefaultWidgetHeight, w.Height, "未提供高度时应使用默认值")
		assert.Equal(t, 0, w.ZIndex, "堆叠顺序应保持存储层默认值 0")
		assert.Nil(t, w.Data, "未提供负载时应为空")
		return true
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Widget).ID = 11
		}).
		Return(nil).
		Once()

	// Act: 宽高留空
	widget, err := svc.Create(ctx, email, dashboard.ID, service.WidgetInput{Type: "note", X: 10, Y: 20})

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, widget)
	assert.Equal(t, uint(11), widget.ID)
	assert.Equal(t, 400, widget.Width)
	assert.Equal(t, 400, widget.Height)

	mockWidgetRepo.AssertExpectations(t)
	mockDashboardRepo.AssertExpectations(t)
}

// 显式提供的尺寸 (包括 0) 不应被默认值覆盖。
func TestWidgetService_Create_ExplicitGeometry(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "alice@example.com"
	_, dashboard := expectOwnedDashboard(mockUserRepo, mockDashboardRepo, ctx, email)

	width, height := 250, 0
	mockWidgetRepo.On("Save", ctx, mock.MatchedBy(func(w *domain.Widget) bool {
		return w.Width == 250 && w.Height == 0
	})).Return(nil).Once()

	// Act
	widget, err := svc.Create(ctx, email, dashboard.ID, service.WidgetInput{
		Type:   "image",
		Width:  &width,
		Height: &height,
	})

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, widget)
	assert.Equal(t, 250, widget.Width)
	assert.Equal(t, 0, widget.Height)

	mockWidgetRepo.AssertExpectations(t)
}

func TestWidgetService_Create_BlankType(t *testing.T) {
	svc, mockWidgetRepo, _, mockUserRepo := newWidgetService()

	_, err := svc.Create(context.Background(), "alice@example.com", 3, service.WidgetInput{Type: ""})

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidInput))
	mockUserRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	mockWidgetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// 画板所有权校验先于组件查找：画板不属于调用方时组件 ID 不会被查询。
func TestWidgetService_List_DashboardNotOwned(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "mallory@example.com"
	user := &domain.User{ID: 9, Email: email}

	mockUserRepo.On("FindByEmail", ctx, email).Return(user, nil).Once()
	mockDashboardRepo.On("FindByIDAndOwner", ctx, uint(3), user.ID).Return(nil, repository.ErrDashboardNotFound).Once()

	// Act
	_, err := svc.List(ctx, email, 3)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrDashboardNotFound))
	mockWidgetRepo.AssertNotCalled(t, "FindByDashboard", mock.Anything, mock.Anything)
}

// 组件查找以画板为范围：属于其他画板的组件 ID 等价于不存在。
func TestWidgetService_Update_CrossDashboardWidgetRejected(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "alice@example.com"
	_, dashboard := expectOwnedDashboard(mockUserRepo, mockDashboardRepo, ctx, email)

	// 组件 42 存在于存储中，但属于别的画板：范围化查询返回未找到
	mockWidgetRepo.On("FindByIDAndDashboard", ctx, uint(42), dashboard.ID).Return(nil, repository.ErrWidgetNotFound).Once()

	// Act
	_, err := svc.Update(ctx, email, dashboard.ID, 42, service.WidgetInput{Type: "note"})

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrWidgetNotFound))
	mockWidgetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// UpdateData 只替换 JSON 负载，几何、类型和名称保持不变。
func TestWidgetService_UpdateData_OnlyData(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "alice@example.com"
	_, dashboard := expectOwnedDashboard(mockUserRepo, mockDashboardRepo, ctx, email)

	existing := &domain.Widget{
		ID:          11,
		DashboardID: dashboard.ID,
		Type:        "note",
		Name:        "My note",
		X:           10,
		Y:           20,
		Width:       400,
		Height:      400,
		ZIndex:      2,
	}
	newData := datatypes.JSONMap{"text": "hi"}

	mockWidgetRepo.On("FindByIDAndDashboard", ctx, existing.ID, dashboard.ID).Return(existing, nil).Once()
	mockWidgetRepo.On("Save", ctx, mock.MatchedBy(func(w *domain.Widget) bool {
		// 负载被替换，其余字段原样保留
		assert.Equal(t, newData, w.Data)
		assert.Equal(t, "note", w.Type)
		assert.Equal(t, "My note", w.Name)
		assert.Equal(t, 10, w.X)
		assert.Equal(t, 20, w.Y)
		assert.Equal(t, 400, w.Width)
		assert.Equal(t, 400, w.Height)
		assert.Equal(t, 2, w.ZIndex)
		return true
	})).Return(nil).Once()

	// Act
	widget, err := svc.UpdateData(ctx, email, dashboard.ID, existing.ID, newData)

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, widget)
	assert.Equal(t, "hi", widget.Data["text"])
	assert.Equal(t, 10, widget.X, "几何字段不应被改动")

	mockWidgetRepo.AssertExpectations(t)
}

func TestWidgetService_Update_ReplacesAllMutableFields(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "alice@example.com"
	_, dashboard := expectOwnedDashboard(mockUserRepo, mockDashboardRepo, ctx, email)

	existing := &domain.Widget{ID: 11, DashboardID: dashboard.ID, Type: "note", X: 10, Y: 20, Width: 400, Height: 400}
	width, height := 640, 480

	mockWidgetRepo.On("FindByIDAndDashboard", ctx, existing.ID, dashboard.ID).Return(existing, nil).Once()
	mockWidgetRepo.On("Save", ctx, mock.MatchedBy(func(w *domain.Widget) bool {
		return w.Type == "chart" && w.Name == "Renamed" && w.X == 5 && w.Y == 6 && w.Width == 640 && w.Height == 480
	})).Return(nil).Once()

	// Act
	widget, err := svc.Update(ctx, email, dashboard.ID, existing.ID, service.WidgetInput{
		Type:   "chart",
		Name:   "Renamed",
		X:      5,
		Y:      6,
		Width:  &width,
		Height: &height,
		Data:   datatypes.JSONMap{"series": []interface{}{1, 2}},
	})

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, widget)
	assert.Equal(t, "chart", widget.Type)

	mockWidgetRepo.AssertExpectations(t)
}

func TestWidgetService_Delete_Success(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "alice@example.com"
	_, dashboard := expectOwnedDashboard(mockUserRepo, mockDashboardRepo, ctx, email)

	widget := &domain.Widget{ID: 11, DashboardID: dashboard.ID, Type: "note"}
	mockWidgetRepo.On("FindByIDAndDashboard", ctx, widget.ID, dashboard.ID).Return(widget, nil).Once()
	mockWidgetRepo.On("Delete", ctx, widget).Return(nil).Once()

	// Act
	err := svc.Delete(ctx, email, dashboard.ID, widget.ID)

	// Assert
	assert.NoError(t, err)
	mockWidgetRepo.AssertExpectations(t)
}

func TestWidgetService_List_Success(t *testing.T) {
	// Arrange
	svc, mockWidgetRepo, mockDashboardRepo, mockUserRepo := newWidgetService()
	ctx := context.Background()
	email := "alice@example.com"
	_, dashboard := expectOwnedDashboard(mockUserRepo, mockDashboardRepo, ctx, email)

	widgets := []domain.Widget{
		{ID: 1, DashboardID: dashboard.ID, Type: "note"},
		{ID: 2, DashboardID: dashboard.ID, Type: "image"},
	}
	mockWidgetRepo.On("FindByDashboard", ctx, dashboard.ID).Return(widgets, nil).Once()

	// Act
	got, err := svc.List(ctx, email, dashboard.ID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	mockWidgetRepo.AssertExpectations(t)
}
