package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// QueryBooksUseCase 同步查询用例
// 直接调用领域服务，结果转换为视图
type QueryBooksUseCase struct {
	bookService book.Service
}

// NewQueryBooksUseCase 创建同步查询用例
func NewQueryBooksUseCase(bookService book.Service) *QueryBooksUseCase {
	return &QueryBooksUseCase{bookService: bookService}
}

// ListAll 完整目录
func (uc *QueryBooksUseCase) ListAll(ctx context.Context) (Catalog, error) {
	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(books), nil
}

// GetByISBN 按ISBN查询单条记录
func (uc *QueryBooksUseCase) GetByISBN(ctx context.Context, isbn string) (BookView, error) {
	b, err := uc.bookService.GetBookByISBN(ctx, isbn)
	if err != nil {
		return BookView{}, err
	}
	return NewBookView(b), nil
}

// ByAuthor 按作者查询
func (uc *QueryBooksUseCase) ByAuthor(ctx context.Context, author string) ([]BookView, error) {
	books, err := uc.bookService.FindByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return NewBookViews(books), nil
}

// ByTitle 按书名查询
func (uc *QueryBooksUseCase) ByTitle(ctx context.Context, title string) ([]BookView, error) {
	books, err := uc.bookService.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return NewBookViews(books), nil
}

// Reviews 书评
func (uc *QueryBooksUseCase) Reviews(ctx context.Context, isbn string) (map[string]string, error) {
	return uc.bookService.GetReviews(ctx, isbn)
}
