package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/dispatch"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewUserHandler 创建用户处理器
func NewUserHandler(dispatcher *dispatch.Dispatcher) *UserHandler {
	return &UserHandler{dispatcher: dispatcher}
}

// Register 用户注册
// @Summary      用户注册
// @Description  用户名唯一（区分大小写），用户名和密码都不能为空
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.UserResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "用户名已存在"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, apperrors.ErrCodeBindError, apperrors.ErrBindError.Message)
		return
	}

	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent:   dispatch.IntentRegister,
		Username: req.Username,
		Password: req.Password,
	}))
}
