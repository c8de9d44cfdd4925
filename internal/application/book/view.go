package book

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BookView 单条图书的对外表示
// ISBN只是查找键，不出现在单条记录里
type BookView struct {
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

// NewBookView 领域实体 → 视图，Reviews为nil时输出{}
func NewBookView(b *book.Book) BookView {
	reviews := b.Reviews
	if reviews == nil {
		reviews = map[string]string{}
	}
	return BookView{Author: b.Author, Title: b.Title, Reviews: reviews}
}

// NewBookViews 批量转换，保持顺序
func NewBookViews(books []*book.Book) []BookView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = NewBookView(b)
	}
	return views
}

// CatalogEntry 目录中的一项
type CatalogEntry struct {
	ISBN string
	Book BookView
}

// Catalog 完整目录，序列化为按插入顺序排列的 ISBN → 图书 对象
type Catalog []CatalogEntry

// NewCatalog 领域实体列表 → 目录
func NewCatalog(books []*book.Book) Catalog {
	c := make(Catalog, len(books))
	for i, b := range books {
		c[i] = CatalogEntry{ISBN: b.ISBN, Book: NewBookView(b)}
	}
	return c
}

// MarshalJSON 输出有序对象
// map会按key重新排序，这里逐项写出
func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.ISBN)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Book)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
