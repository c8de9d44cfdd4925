package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[40900] 参数错误", ErrInvalidParams.Error())

	wrapped := Wrap(fmt.Errorf("dial tcp: refused"), "获取图书数据失败")
	assert.Equal(t, "[50000] 获取图书数据失败: dial tcp: refused", wrapped.Error())
}

func TestAppError_IsAfterWithCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("fetch: %w", WithCause(ErrSourceUnavailable, cause))

	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, cause), "内部原因应可通过Unwrap取得")
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		got := GetAppError(fmt.Errorf("wrap: %w", ErrBindError))
		assert.Equal(t, ErrCodeBindError, got.Code)
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		got := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.True(t, IsAppError(got))
	})
}
