package source

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// BreakerName 远程数据源熔断器名称
const BreakerName = "catalog-source"

// New 按配置组装异步路径的数据源
//
//	local: LocalSource → 指标 → [缓存]
//	http:  HTTPSource → 熔断 → 指标 → [缓存]
//
// cache为nil时不启用缓存
func New(cfg *config.Config, repo book.Repository, cache Cache, log *zap.Logger, m *metrics.Metrics) (book.Source, error) {
	var src book.Source

	switch cfg.Catalog.Source {
	case "local":
		src = NewInstrumentedSource("local", NewLocalSource(repo), m)
	case "http":
		b := cfg.Catalog.Breaker
		var trip func(circuitbreaker.Counts) bool
		if b.ConsecutiveFailures > 0 {
			trip = circuitbreaker.ConsecutiveFailures(b.ConsecutiveFailures)
		}
		cb := circuitbreaker.New(BreakerName, circuitbreaker.Config{
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			ReadyToTrip:  trip,
			IsSuccessful: circuitbreaker.IgnoreCanceled,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn("熔断器状态变化",
					zap.String("name", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to))
				m.SetBreakerState(name, int(to))
			},
		})
		remote := NewHTTPSource(cfg.Catalog.RemoteURL, cfg.Catalog.RemoteTimeout)
		src = NewInstrumentedSource("http", NewBreakerSource(remote, cb, m), m)
	default:
		return nil, fmt.Errorf("不支持的数据源类型: %s", cfg.Catalog.Source)
	}

	if cache != nil {
		src = NewCachedSource(src, cache, log, m)
	}
	return src, nil
}
