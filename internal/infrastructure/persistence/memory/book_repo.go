package memory

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// bookRepository 图书仓储实现(进程内)
// 设计说明:
// 1. 构造时一次性装载,之后只读,读操作不需要加锁
// 2. books保存插入顺序,index用于按ISBN O(1)查找
type bookRepository struct {
	books []*book.Book
	index map[string]*book.Book
}

// NewBookRepository 创建进程内图书仓储
// 重复ISBN只保留第一条(数据文件由seed.LoadBooks保证不重复)
func NewBookRepository(books []*book.Book) book.Repository {
	r := &bookRepository{
		books: make([]*book.Book, 0, len(books)),
		index: make(map[string]*book.Book, len(books)),
	}
	for _, b := range books {
		if _, ok := r.index[b.ISBN]; ok {
			continue
		}
		r.books = append(r.books, b)
		r.index[b.ISBN] = b
	}
	return r
}

// List 按插入顺序返回全部图书
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	out := make([]*book.Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	b, ok := r.index[isbn]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
