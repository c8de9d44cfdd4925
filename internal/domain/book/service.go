package book

import (
	"context"
	"errors"
)

// Service 图书目录领域服务接口
// 设计说明:
// 1. 只包含精确匹配查询,没有排序、分页、模糊搜索
// 2. 匹配规则由Predicate统一定义,异步路径复用同一套谓词
type Service interface {
	// ListBooks 返回全部图书(插入顺序)
	ListBooks(ctx context.Context) ([]*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindByAuthor 按作者查询(忽略大小写),结果为空返回ErrAuthorNotFound
	FindByAuthor(ctx context.Context, author string) ([]*Book, error)

	// FindByTitle 按书名查询(忽略大小写),结果为空返回ErrTitleNotFound
	FindByTitle(ctx context.Context, title string) ([]*Book, error)

	// GetReviews 获取书评
	// 业务规则: 图书不存在 与 图书没有书评 都返回ErrReviewsNotFound
	GetReviews(ctx context.Context, isbn string) (map[string]string, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListBooks 返回全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// FindByAuthor 按作者查询
func (s *service) FindByAuthor(ctx context.Context, author string) ([]*Book, error) {
	return s.findAll(ctx, ByAuthor(author), ErrAuthorNotFound)
}

// FindByTitle 按书名查询
func (s *service) FindByTitle(ctx context.Context, title string) ([]*Book, error) {
	return s.findAll(ctx, ByTitle(title), ErrTitleNotFound)
}

// GetReviews 获取书评
func (s *service) GetReviews(ctx context.Context, isbn string) (map[string]string, error) {
	b, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil, ErrReviewsNotFound
		}
		return nil, err
	}

	if !b.HasReviews() {
		return nil, ErrReviewsNotFound
	}

	return b.Reviews, nil
}

func (s *service) findAll(ctx context.Context, match Predicate, notFound error) ([]*Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := Filter(books, match)
	if len(matched) == 0 {
		return nil, notFound
	}
	return matched, nil
}
