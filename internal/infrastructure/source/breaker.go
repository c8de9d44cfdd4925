package source

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// BreakerSource 熔断保护的数据源
// 熔断打开时直接返回circuitbreaker.ErrOpenState，不再请求远端
type BreakerSource struct {
	next    book.Source
	cb      *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

// NewBreakerSource 创建带熔断的数据源
func NewBreakerSource(next book.Source, cb *circuitbreaker.CircuitBreaker, m *metrics.Metrics) *BreakerSource {
	return &BreakerSource{next: next, cb: cb, metrics: m}
}

// FetchAll 实现book.Source
func (s *BreakerSource) FetchAll(ctx context.Context) ([]*book.Book, error) {
	var books []*book.Book
	err := s.cb.Execute(ctx, func(ctx context.Context) error {
		var err error
		books, err = s.next.FetchAll(ctx)
		return err
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		s.metrics.IncBreakerRequest(s.cb.Name(), "rejected")
	case err != nil:
		s.metrics.IncBreakerRequest(s.cb.Name(), "failure")
	default:
		s.metrics.IncBreakerRequest(s.cb.Name(), "success")
	}

	if err != nil {
		return nil, err
	}
	return books, nil
}
