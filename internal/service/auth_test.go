package service_test // 测试包

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"creative-studio/internal/domain"
	"creative-studio/internal/repository"
	"creative-studio/internal/repository/mocks"
	"creative-studio/internal/service"
)

// --- 测试 Register 方法 ---

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange: 准备 Mock 对象, Service 实例, 和测试数据
	mockUserRepo := new(mocks.UserRepository)
	authService, err := service.NewAuthService(mockUserRepo, "very-secret-key", 1)
	require.NoError(t, err, "创建 AuthService 不应失败")

	ctx := context.Background()
	name := "alice"
	email := "alice@example.com"
	password := "StrongPass123"

	// 设置 Mock 预期:
	// 1. 邮箱查重，模拟邮箱未被注册
	mockUserRepo.On("ExistsByEmail", ctx, email).Return(false, nil).Once()

	// 2. Save 被调用时模拟保存成功，并填充 ID/时间戳
	// (密码哈希在 Run 中捕获后再断言：MatchedBy 会在 AssertExpectations 时
	// 对同一指针重新求值，而此时 Service 已清空 Password 字段)
	var savedPassword string
	mockUserRepo.On("Save", ctx, mock.MatchedBy(func(user *domain.User) bool {
		assert.Equal(t, name, user.Username)
		assert.Equal(t, email, user.Email)
		return true
	})).
		Run(func(args mock.Arguments) { // 模拟数据库填充字段
			userArg := args.Get(1).(*domain.User)
			savedPassword = userArg.Password
			userArg.ID = 5
			userArg.CreatedAt = time.Now().Add(-time.Second)
			userArg.UpdatedAt = time.Now().Add(-time.Second)
		}).
		Return(nil).
		Once()

	// Act
	registeredUser, token, err := authService.Register(ctx, name, email, password)

	// Assert
	assert.NoError(t, err, "成功注册时不应有错误")
	assert.NotEmpty(t, token, "成功注册时应返回凭证")
	// 验证密码已被正确哈希
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedPassword), []byte(password)), "密码应被正确哈希")
	require.NotNil(t, registeredUser, "成功注册时应返回用户对象")
	assert.Equal(t, uint(5), registeredUser.ID)
	assert.Equal(t, name, registeredUser.Username)
	assert.Equal(t, email, registeredUser.Email)
	assert.Empty(t, registeredUser.Password, "返回的用户密码应为空")

	// Verify: 确保 Mock 的所有预期都被满足
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService, _ := service.NewAuthService(mockUserRepo, "secret", 1)
	ctx := context.Background()
	email := "taken@example.com"

	// 设置 Mock 预期: 邮箱已被注册
	mockUserRepo.On("ExistsByEmail", ctx, email).Return(true, nil).Once()

	// Act
	_, _, err := authService.Register(ctx, "bob", email, "password")

	// Assert
	require.Error(t, err, "邮箱已注册时应返回错误")
	assert.True(t, errors.Is(err, service.ErrEmailTaken), "错误类型应为 ErrEmailTaken")

	// Verify: Save 不应被调用
	mockUserRepo.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Register_SaveFails_DuplicateEntry(t *testing.T) {
	// Arrange: 查重和插入之间的并发注册，由唯一约束兜底
	mockUserRepo := new(mocks.UserRepository)
	authService, _ := service.NewAuthService(mockUserRepo, "secret", 1)
	ctx := context.Background()
	email := "race@example.com"

	mockUserRepo.On("ExistsByEmail", ctx, email).Return(false, nil).Once()
	mockUserRepo.On("Save", ctx, mock.AnythingOfType("*domain.User")).Return(repository.ErrDuplicateEntry).Once()

	// Act
	_, _, err := authService.Register(ctx, "carol", email, "password")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrEmailTaken), "保存冲突时也应返回 ErrEmailTaken")

	mockUserRepo.AssertExpectations(t)
}

// --- 测试 Login 方法 ---

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	authService, _ := service.NewAuthService(mockUserRepo, "test-secret", 24)
	ctx := context.Background()
	email := "dave@example.com"
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userInDb := &domain.User{ID: 1, Username: "dave", Email: email, Password: string(hashedPassword)}

	mockUserRepo.On("FindByEmail", ctx, email).Return(userInDb, nil).Once()

	// Act
	user, token, err := authService.Login(ctx, email, password)

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, email, user.Email)
	assert.Empty(t, user.Password, "返回的用户密码应为空")

	mockUserRepo.AssertExpectations(t)
}

// 邮箱未注册和密码错误必须返回完全相同的错误，不泄露具体是哪一项失败。
func TestAuthService_Login_GenericFailure(t *testing.T) {
	ctx := context.Background()
	email := "eve@example.com"
	password := "correct-password"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	// 场景一: 邮箱未注册
	mockRepo1 := new(mocks.UserRepository)
	authService1, _ := service.NewAuthService(mockRepo1, "test-secret", 24)
	mockRepo1.On("FindByEmail", ctx, email).Return(nil, repository.ErrUserNotFound).Once()

	_, token1, errUnknown := authService1.Login(ctx, email, password)

	// 场景二: 邮箱存在但密码错误
	mockRepo2 := new(mocks.UserRepository)
	authService2, _ := service.NewAuthService(mockRepo2, "test-secret", 24)
	userInDb := &domain.User{ID: 2, Username: "eve", Email: email, Password: string(hashedPassword)}
	mockRepo2.On("FindByEmail", ctx, email).Return(userInDb, nil).Once()

	_, token2, errWrongPassword := authService2.Login(ctx, email, "wrong-password")

	// Assert: 两种失败对调用方完全一致
	require.Error(t, errUnknown)
	require.Error(t, errWrongPassword)
	assert.Empty(t, token1)
	assert.Empty(t, token2)
	assert.True(t, errors.Is(errUnknown, service.ErrAuthenticationFailed))
	assert.True(t, errors.Is(errWrongPassword, service.ErrAuthenticationFailed))
	assert.Equal(t, errUnknown, errWrongPassword, "两种失败应返回同一个错误值")

	mockRepo1.AssertExpectations(t)
	mockRepo2.AssertExpectations(t)
}
