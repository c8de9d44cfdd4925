package user

import (
	"context"
	"sync"
)

// Service 用户注册领域服务
// 设计说明：
// 1. 唯一性检查和追加在同一把锁内完成，构成一个原子单元
// 2. 两个并发的同名注册，后进入临界区的一方一定能看到前者的结果
// 3. 跨进程部署时由MySQL的UNIQUE索引兜底（Repository转换为ErrUsernameDuplicate）
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, username, password string) (*User, error)

	// IsRegistered 用户名是否已被注册
	IsRegistered(ctx context.Context, username string) (bool, error)
}

type service struct {
	mu     sync.Mutex
	repo   Repository
	hasher PasswordHasher
}

// NewService 创建用户服务
func NewService(repo Repository, hasher PasswordHasher) Service {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return &service{repo: repo, hasher: hasher}
}

// Register 用户注册
// 业务规则：
// 1. 用户名、密码都必须非空（只校验是否提供，不校验内容）
// 2. 用户名已存在 → ErrUsernameDuplicate，与密码无关
// 3. 否则追加新用户
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameDuplicate
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := NewUser(username, stored)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return user, nil
}

// IsRegistered 用户名是否已被注册
func (s *service) IsRegistered(ctx context.Context, username string) (bool, error) {
	return s.repo.Exists(ctx, username)
}
