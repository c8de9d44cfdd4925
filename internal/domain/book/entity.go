package book

import (
	"strings"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ISBN是目录的查找键,序列化单条记录时不输出(见dto.BookResponse)
// 2. Author/Title保留原始大小写,匹配时统一转小写比较
// 3. Reviews为 评论者 → 评论内容,可以为空
// 4. 目录加载后不可变,领域层不提供任何修改方法
type Book struct {
	ISBN    string
	Author  string
	Title   string
	Reviews map[string]string
}

// NewBook 创建图书(工厂方法)
// reviews会被复制一份,调用方后续修改原map不会影响实体
func NewBook(isbn, author, title string, reviews map[string]string) *Book {
	copied := make(map[string]string, len(reviews))
	for reviewer, text := range reviews {
		copied[reviewer] = text
	}
	return &Book{
		ISBN:    isbn,
		Author:  author,
		Title:   title,
		Reviews: copied,
	}
}

// HasReviews 是否有书评
func (b *Book) HasReviews() bool {
	return len(b.Reviews) > 0
}

// =========================================
// 匹配谓词(同步/异步两条查询路径共用)
// =========================================

// Predicate 图书匹配谓词
type Predicate func(b *Book) bool

// ByISBN ISBN精确匹配
func ByISBN(isbn string) Predicate {
	return func(b *Book) bool {
		return b.ISBN == isbn
	}
}

// ByAuthor 作者匹配: 两边都转小写后完全相等(不做子串/模糊匹配)
func ByAuthor(author string) Predicate {
	want := strings.ToLower(author)
	return func(b *Book) bool {
		return strings.ToLower(b.Author) == want
	}
}

// ByTitle 书名匹配,规则同ByAuthor
func ByTitle(title string) Predicate {
	want := strings.ToLower(title)
	return func(b *Book) bool {
		return strings.ToLower(b.Title) == want
	}
}

// Filter 按谓词过滤,保持原有顺序
// 没有匹配时返回空切片(非nil),由调用方决定是否视为NOT_FOUND
func Filter(books []*Book, match Predicate) []*Book {
	result := make([]*Book, 0)
	for _, b := range books {
		if match(b) {
			result = append(result, b)
		}
	}
	return result
}

// First 返回第一个匹配的图书
func First(books []*Book, match Predicate) (*Book, bool) {
	for _, b := range books {
		if match(b) {
			return b, true
		}
	}
	return nil, false
}
