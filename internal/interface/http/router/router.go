package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Options 路由可选项
type Options struct {
	// MetricsPath 非空时暴露Prometheus指标
	MetricsPath string
	// Gatherer 指标来源，为nil时使用prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
	// Swagger 是否挂载Swagger UI
	Swagger bool
}

// New 创建Gin引擎并注册全部路由
func New(
	log *zap.Logger,
	m *metrics.Metrics,
	books *handler.BookHandler,
	async *handler.AsyncBookHandler,
	users *handler.UserHandler,
	opts Options,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		propagate(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.Metrics(m),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if opts.MetricsPath != "" {
		g := opts.Gatherer
		if g == nil {
			g = prometheus.DefaultGatherer
		}
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	}

	if opts.Swagger {
		// 访问 http://localhost:8080/swagger/index.html
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		b := v1.Group("/books")
		{
			b.GET("", books.ListBooks)
			b.GET("/isbn/:isbn", books.GetByISBN)
			b.GET("/author/:author", books.GetByAuthor)
			b.GET("/title/:title", books.GetByTitle)
			b.GET("/review/:isbn", books.GetReviews)
		}

		a := v1.Group("/async")
		{
			a.GET("/books", async.ListBooks)
			a.GET("/isbn/:isbn", async.GetByISBN)
			a.GET("/author/:author", async.GetByAuthor)
			a.GET("/title/:title", async.GetByTitle)
		}

		u := v1.Group("/users")
		{
			u.POST("/register", users.Register)
		}
	}

	return r
}

// propagate 从请求头提取上游trace上下文
func propagate() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
