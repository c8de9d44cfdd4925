package source

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// InstrumentedSource 记录拉取次数和耗时
type InstrumentedSource struct {
	name    string
	next    book.Source
	metrics *metrics.Metrics
}

// NewInstrumentedSource 创建带指标的数据源，m为nil时不记录
func NewInstrumentedSource(name string, next book.Source, m *metrics.Metrics) *InstrumentedSource {
	return &InstrumentedSource{name: name, next: next, metrics: m}
}

// FetchAll 实现book.Source
func (s *InstrumentedSource) FetchAll(ctx context.Context) ([]*book.Book, error) {
	start := time.Now()
	books, err := s.next.FetchAll(ctx)
	s.metrics.ObserveSourceFetch(s.name, err, time.Since(start))
	return books, err
}
