package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/application/dispatch"
)

// BookHandler 图书目录HTTP处理器（同步路径）
// Handler只负责取参数和输出，查询语义全部在Dispatcher之后
type BookHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewBookHandler 创建图书处理器
func NewBookHandler(dispatcher *dispatch.Dispatcher) *BookHandler {
	return &BookHandler{dispatcher: dispatcher}
}

// ListBooks 完整目录
// @Summary      图书目录
// @Description  返回全部图书，ISBN → 图书，保持插入顺序
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.CatalogResponse}
// @Failure      500 {object} response.Response
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentListAll,
	}))
}

// GetByISBN 按ISBN查询
// @Summary      按ISBN查询图书
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/isbn/{isbn} [get]
func (h *BookHandler) GetByISBN(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentGetByID,
		ISBN:   c.Param("isbn"),
	}))
}

// GetByAuthor 按作者查询（忽略大小写，完全匹配）
// @Summary      按作者查询图书
// @Tags         图书
// @Produce      json
// @Param        author path string true "作者"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      404 {object} response.Response "没有该作者的图书"
// @Router       /api/v1/books/author/{author} [get]
func (h *BookHandler) GetByAuthor(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentGetByAuthor,
		Author: c.Param("author"),
	}))
}

// GetByTitle 按书名查询（忽略大小写，完全匹配）
// @Summary      按书名查询图书
// @Tags         图书
// @Produce      json
// @Param        title path string true "书名"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      404 {object} response.Response "没有该书名的图书"
// @Router       /api/v1/books/title/{title} [get]
func (h *BookHandler) GetByTitle(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentGetByTitle,
		Title:  c.Param("title"),
	}))
}

// GetReviews 书评
// @Summary      获取书评
// @Description  图书不存在或没有书评都返回404
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.ReviewsResponse}
// @Failure      404 {object} response.Response "没有书评"
// @Router       /api/v1/books/review/{isbn} [get]
func (h *BookHandler) GetReviews(c *gin.Context) {
	render(c, h.dispatcher.Dispatch(c.Request.Context(), dispatch.Request{
		Intent: dispatch.IntentGetReviews,
		ISBN:   c.Param("isbn"),
	}))
}
