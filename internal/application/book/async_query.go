package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/future"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// AsyncQueryUseCase 异步查询用例
//
// 每个查询都在Future里执行：
//  1. 通过Source拉取完整目录（一跳）
//  2. 用与同步路径相同的谓词过滤
//
// 相同目录状态下结果与QueryBooksUseCase一致。
// 一跳失败统一包装为ErrSourceUnavailable，内部原因只进日志。
type AsyncQueryUseCase struct {
	source book.Source
}

// NewAsyncQueryUseCase 创建异步查询用例
func NewAsyncQueryUseCase(source book.Source) *AsyncQueryUseCase {
	return &AsyncQueryUseCase{source: source}
}

// ListAll 完整目录
func (uc *AsyncQueryUseCase) ListAll(ctx context.Context) *future.Future[Catalog] {
	return future.Go(ctx, func(ctx context.Context) (Catalog, error) {
		books, err := uc.fetchAll(ctx, "list-all")
		if err != nil {
			return nil, err
		}
		return NewCatalog(books), nil
	})
}

// GetByISBN 按ISBN查询，不存在时Future以ErrBookNotFound失败
func (uc *AsyncQueryUseCase) GetByISBN(ctx context.Context, isbn string) *future.Future[BookView] {
	return future.Go(ctx, func(ctx context.Context) (BookView, error) {
		books, err := uc.fetchAll(ctx, "get-by-id")
		if err != nil {
			return BookView{}, err
		}
		b, ok := book.First(books, book.ByISBN(isbn))
		if !ok {
			return BookView{}, book.ErrBookNotFound
		}
		return NewBookView(b), nil
	})
}

// ByAuthor 按作者查询
func (uc *AsyncQueryUseCase) ByAuthor(ctx context.Context, author string) *future.Future[[]BookView] {
	return uc.filter(ctx, "get-by-author", book.ByAuthor(author), book.ErrAuthorNotFound)
}

// ByTitle 按书名查询
func (uc *AsyncQueryUseCase) ByTitle(ctx context.Context, title string) *future.Future[[]BookView] {
	return uc.filter(ctx, "get-by-title", book.ByTitle(title), book.ErrTitleNotFound)
}

func (uc *AsyncQueryUseCase) filter(ctx context.Context, op string, match book.Predicate, notFound error) *future.Future[[]BookView] {
	return future.Go(ctx, func(ctx context.Context) ([]BookView, error) {
		books, err := uc.fetchAll(ctx, op)
		if err != nil {
			return nil, err
		}
		matched := book.Filter(books, match)
		if len(matched) == 0 {
			return nil, notFound
		}
		return NewBookViews(matched), nil
	})
}

// fetchAll 一跳：拉取完整目录
func (uc *AsyncQueryUseCase) fetchAll(ctx context.Context, op string) (books []*book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.source.fetch_all")
	span.SetAttributes(attribute.String("catalog.intent", op))
	defer func() { tracing.EndSpan(span, err) }()

	books, err = uc.source.FetchAll(ctx)
	if err != nil {
		return nil, apperrors.WithCause(book.ErrSourceUnavailable, err)
	}
	span.SetAttributes(attribute.Int("catalog.size", len(books)))
	return books, nil
}
