package dto

// BookResponse 单条图书（swagger文档用，实际输出为appbook.BookView）
type BookResponse struct {
	Author  string            `json:"author" example:"Chinua Achebe"`
	Title   string            `json:"title" example:"Things Fall Apart"`
	Reviews map[string]string `json:"reviews"`
}

// CatalogResponse 完整目录：ISBN → 图书，按插入顺序输出
type CatalogResponse map[string]BookResponse

// ReviewsResponse 书评：评论者 → 内容
type ReviewsResponse map[string]string
