package user

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// PasswordHasher 密码存储策略
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// PlainHasher 原样保存（默认策略）
type PlainHasher struct{}

// Hash 返回原始密码
func (PlainHasher) Hash(plain string) (string, error) {
	return plain, nil
}

// BcryptHasher bcrypt加密保存
// 学习要点：
// - bcrypt自动加盐，相同密码每次结果不同
// - cost每+1，耗时翻倍；为0时使用bcrypt.DefaultCost
type BcryptHasher struct {
	Cost int
}

// Hash 生成bcrypt哈希
func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

// NewPasswordHasher 根据配置选择密码策略
func NewPasswordHasher(hash bool, cost int) PasswordHasher {
	if hash {
		return BcryptHasher{Cost: cost}
	}
	return PlainHasher{}
}
