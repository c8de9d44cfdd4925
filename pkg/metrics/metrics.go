// Package metrics 基于Prometheus的指标收集
//
// 指标分组：
//   - HTTP：请求总数、耗时、处理中的请求数
//   - 调度：按意图和结果分类统计（SUCCESS / NOT_FOUND / ...）
//   - 数据源：异步路径拉取目录的次数、耗时、缓存命中
//   - 熔断器：状态与请求结果
//   - 注册与消息：注册成功数、事件发布数
//
// 使用方式：
//
//	m := metrics.New(prometheus.DefaultRegisterer)
//	m.ObserveDispatch("get-by-id", "SUCCESS", time.Since(start))
//
// 所有方法对nil接收者安全，未启用指标时传nil即可，调用方不需要判断
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 服务指标集合
type Metrics struct {
	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，避免高基数）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// DispatchTotal 调度结果总数
	// 标签：intent、outcome
	DispatchTotal *prometheus.CounterVec

	// DispatchDuration 调度耗时
	DispatchDuration *prometheus.HistogramVec

	// SourceFetchTotal 数据源拉取次数
	// 标签：source（local/http/cache）、result（success/failure）
	SourceFetchTotal *prometheus.CounterVec

	// SourceFetchDuration 数据源拉取耗时
	SourceFetchDuration *prometheus.HistogramVec

	// CacheRequestsTotal 目录缓存访问
	// 标签：result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// UsersRegisteredTotal 注册成功总数
	UsersRegisteredTotal prometheus.Counter

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec
}

// New 创建并注册全部指标
// reg为nil时使用prometheus.DefaultRegisterer；测试中传入prometheus.NewRegistry()避免重复注册
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}, []string{"method", "path"}),

		HTTPRequestsInProgress: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		}),

		DispatchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_dispatch_total",
			Help: "按意图和结果统计的调度次数",
		}, []string{"intent", "outcome"}),

		DispatchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_dispatch_duration_seconds",
			Help:    "调度耗时（秒）",
			Buckets: []float64{0.0005, 0.001, 0.01, 0.1, 0.5, 1, 5},
		}, []string{"intent"}),

		SourceFetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_source_fetch_total",
			Help: "异步路径拉取完整目录的次数",
		}, []string{"source", "result"}),

		SourceFetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name: "catalog_source_fetch_duration_seconds",
			Help: "拉取完整目录耗时（秒）",
			// 远程拉取受网络影响，桶比调度耗时更宽
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 3, 10},
		}, []string{"source"}),

		CacheRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "目录缓存访问次数",
		}, []string{"result"}),

		CircuitBreakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		}, []string{"name"}),

		CircuitBreakerRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		}, []string{"name", "result"}),

		UsersRegisteredTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "注册成功的用户总数",
		}),

		MessagesPublishedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		}, []string{"exchange", "routing_key", "result"}),
	}
}

// ObserveHTTP 记录一次HTTP请求
func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// TrackInFlight 处理中的请求数+1，返回的函数用于-1
func (m *Metrics) TrackInFlight() func() {
	if m == nil {
		return func() {}
	}
	m.HTTPRequestsInProgress.Inc()
	return m.HTTPRequestsInProgress.Dec
}

// ObserveDispatch 记录一次调度
func (m *Metrics) ObserveDispatch(intent, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(intent, outcome).Inc()
	m.DispatchDuration.WithLabelValues(intent).Observe(d.Seconds())
}

// ObserveSourceFetch 记录一次目录拉取
func (m *Metrics) ObserveSourceFetch(source string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.SourceFetchTotal.WithLabelValues(source, result(err)).Inc()
	m.SourceFetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// IncCache 记录缓存访问结果（hit/miss/error）
func (m *Metrics) IncCache(res string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(res).Inc()
}

// SetBreakerState 设置熔断器状态
func (m *Metrics) SetBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// IncBreakerRequest 记录熔断器请求结果（success/failure/rejected）
func (m *Metrics) IncBreakerRequest(name, res string) {
	if m == nil {
		return
	}
	m.CircuitBreakerRequests.WithLabelValues(name, res).Inc()
}

// IncUserRegistered 注册成功+1
func (m *Metrics) IncUserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegisteredTotal.Inc()
}

// IncMessagePublished 记录一次消息发布
func (m *Metrics) IncMessagePublished(exchange, routingKey string, err error) {
	if m == nil {
		return
	}
	m.MessagesPublishedTotal.WithLabelValues(exchange, routingKey, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
