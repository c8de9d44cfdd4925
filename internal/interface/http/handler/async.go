package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/dispatch"
)

// AsyncBookHandler 图书目录HTTP处理器（异步路径）
// 先经数据源拉取完整目录再过滤，数据源失败时返回500
type AsyncBookHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewAsyncBookHandler 创建异步图书处理器
func NewAsyncBookHandler(dispatcher *dispatch.Dispatcher) *AsyncBookHandler {
	return &AsyncBookHandler{dispatcher: dispatcher}
}

// ListBooks 完整目录（异步）
// @Summary      图书目录（异步）
// @Tags         图书-异步
// @Produce      json
// @Success      200 {object} response.Response{data=dto.CatalogResponse}
// @Failure      500 {object} response.Response "获取图书数据失败"
// @Router       /api/v1/async/books [get]
func (h *AsyncBookHandler) ListBooks(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentAsyncListAll,
	}))
}

// GetByISBN 按ISBN查询（异步）
// @Summary      按ISBN查询图书（异步）
// @Tags         图书-异步
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      500 {object} response.Response "获取图书数据失败"
// @Router       /api/v1/async/isbn/{isbn} [get]
func (h *AsyncBookHandler) GetByISBN(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentAsyncGetByID,
		ISBN:   c.Param("isbn"),
	}))
}

// GetByAuthor 按作者查询（异步）
// @Summary      按作者查询图书（异步）
// @Tags         图书-异步
// @Produce      json
// @Param        author path string true "作者"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      404 {object} response.Response "没有该作者的图书"
// @Failure      500 {object} response.Response "获取图书数据失败"
// @Router       /api/v1/async/author/{author} [get]
func (h *AsyncBookHandler) GetByAuthor(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentAsyncByAuthor,
		Author: c.Param("author"),
	}))
}

// GetByTitle 按书名查询（异步）
// @Summary      按书名查询图书（异步）
// @Tags         图书-异步
// @Produce      json
// @Param        title path string true "书名"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      404 {object} response.Response "没有该书名的图书"
// @Failure      500 {object} response.Response "获取图书数据失败"
// @Router       /api/v1/async/title/{title} [get]
func (h *AsyncBookHandler) GetByTitle(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentAsyncByTitle,
		Title:  c.Param("title"),
	}))
}
