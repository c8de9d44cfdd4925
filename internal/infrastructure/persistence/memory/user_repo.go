package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// userRepository 用户仓储实现(进程内,只追加)
type userRepository struct {
	mu    sync.RWMutex
	users []*user.User
	index map[string]struct{}
}

// NewUserRepository 创建进程内用户仓储
func NewUserRepository() user.Repository {
	return &userRepository{index: make(map[string]struct{})}
}

// Exists 用户名是否存在
func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[username]
	return ok, nil
}

// Create 追加用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[u.Username]; ok {
		return user.ErrUsernameDuplicate
	}
	r.users = append(r.users, u)
	r.index[u.Username] = struct{}{}
	return nil
}
