package user

import (
	"context"
)

// Repository 馆员账号仓储接口
// 接口定义在domain层，具体实现在infrastructure/persistence层
type Repository interface {
	// Create 创建账号
	// 注意：如果邮箱已存在，应返回errors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找
	// 如果不存在，返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找
	// 如果不存在，返回errors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Count 账号总数，为0时首个注册的账号成为管理员
	Count(ctx context.Context) (int64, error)
}
