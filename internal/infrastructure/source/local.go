package source

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// LocalSource 进程内委托：直接读取本地目录仓储
// 单机部署时异步路径的"一跳"就是它
type LocalSource struct {
	repo book.Repository
}

// NewLocalSource 创建进程内数据源
func NewLocalSource(repo book.Repository) *LocalSource {
	return &LocalSource{repo: repo}
}

// FetchAll 实现book.Source
func (s *LocalSource) FetchAll(ctx context.Context) ([]*book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
