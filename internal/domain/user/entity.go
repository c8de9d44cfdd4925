package user

import (
	"time"
)

// User 用户凭证实体
// DDD设计说明：
// 1. Username全局唯一（区分大小写，精确匹配）
// 2. Password按PasswordHasher策略存储，默认原样保存
// 3. 只能通过注册创建，之后不修改、不删除
type User struct {
	Username  string
	Password  string
	CreatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
func NewUser(username, password string) *User {
	return &User{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
}
