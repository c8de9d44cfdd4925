package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/dispatch"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// render 把调度结果写成统一响应
func render(c *gin.Context, out dispatch.Outcome) {
	response.JSON(c, out.Kind.HTTPStatus(), out.Code, out.Message, out.Payload)
}
