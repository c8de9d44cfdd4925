package user

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrMissingCredentials 用户名或密码缺失
	ErrMissingCredentials = apperrors.New(apperrors.ErrCodeInvalidParams, "用户名和密码不能为空")

	// ErrUsernameDuplicate 用户名已存在
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "用户名已存在")
)
