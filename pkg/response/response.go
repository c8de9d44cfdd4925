package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// 1. Code是业务错误码（0表示成功），与HTTP状态码配合使用
// 2. 失败时Data为null，内部错误细节只写日志
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// JSON 按给定HTTP状态码输出统一响应
func JSON(c *gin.Context, status, code int, message string, data interface{}) {
	c.JSON(status, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, 0, "success", data)
}

// Fail 失败响应，不携带数据
func Fail(c *gin.Context, status, code int, message string) {
	JSON(c, status, code, message, nil)
}
