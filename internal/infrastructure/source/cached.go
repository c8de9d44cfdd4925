package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Cache 完整目录快照缓存（redis.CatalogCache实现）
type Cache interface {
	Get(ctx context.Context) ([]*book.Book, bool, error)
	Set(ctx context.Context, books []*book.Book) error
}

// CachedSource 旁路缓存：先查缓存，未命中再回源并回填
// 缓存故障只降级为回源，不影响查询结果
type CachedSource struct {
	next    book.Source
	cache   Cache
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewCachedSource 创建带缓存的数据源
func NewCachedSource(next book.Source, cache Cache, log *zap.Logger, m *metrics.Metrics) *CachedSource {
	return &CachedSource{next: next, cache: cache, log: log, metrics: m}
}

// FetchAll 实现book.Source
func (s *CachedSource) FetchAll(ctx context.Context) ([]*book.Book, error) {
	books, hit, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		s.metrics.IncCache("error")
		s.log.Warn("读取目录缓存失败，回源", zap.Error(err))
	case hit:
		s.metrics.IncCache("hit")
		return books, nil
	default:
		s.metrics.IncCache("miss")
	}

	books, err = s.next.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, books); err != nil {
		s.log.Warn("回填目录缓存失败", zap.Error(err))
	}
	return books, nil
}
