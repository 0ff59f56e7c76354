// Package repository 定义了领域数据的存储和检索接口。
// 具体实现位于 internal/infra/persistence 下。
package repository

import (
	"context"

	"creative-studio/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByEmail 根据邮箱查找用户。
	// 每个需要认证的操作都通过它把 token subject 绑定到完整的用户记录。
	// 如果用户不存在，返回 repository.ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户。
	// 如果用户不存在，返回 repository.ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// ExistsByEmail 检查邮箱是否已被注册。
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save 保存用户信息。
	// 如果用户已存在 (基于 ID)，则更新；否则创建新用户。
	// 违反唯一约束时返回 repository.ErrDuplicateEntry。
	Save(ctx context.Context, user *domain.User) error
}
