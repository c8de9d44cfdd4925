package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/{memory,mysql}
// 3. 只追加，不提供更新和删除
type Repository interface {
	// Exists 用户名是否已注册（精确匹配）
	Exists(ctx context.Context, username string) (bool, error)

	// Create 追加用户
	// 注意：如果用户名已存在，应返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error
}
