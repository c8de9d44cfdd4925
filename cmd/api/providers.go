package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/seed"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/source"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// App 组装完成的应用
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Engine  *gin.Engine
	Tracing tracing.Shutdown
}

func newApp(cfg *config.Config, log *zap.Logger, engine *gin.Engine, shutdown tracing.Shutdown) *App {
	return &App{Config: cfg, Logger: log, Engine: engine, Tracing: shutdown}
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

// provideMetrics 未启用时返回nil，各组件对nil安全
func provideMetrics(cfg *config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(prometheus.DefaultRegisterer)
}

func provideTracing(cfg *config.Config) (tracing.Shutdown, error) {
	return tracing.Init(context.Background(), tracing.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
	})
}

// provideDB memory存储时不连接数据库
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	if cfg.Storage.Driver != "mysql" {
		return nil, func() {}, nil
	}

	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideBookRepository(cfg *config.Config, db *gorm.DB, log *zap.Logger) (book.Repository, error) {
	if cfg.Storage.Driver == "mysql" {
		return mysql.NewBookRepository(db), nil
	}

	books, err := seed.LoadBooksFile(cfg.Storage.SeedFile)
	if err != nil {
		return nil, err
	}
	log.Info("目录加载完成", zap.String("file", cfg.Storage.SeedFile), zap.Int("books", len(books)))
	return memory.NewBookRepository(books), nil
}

func provideUserRepository(cfg *config.Config, db *gorm.DB) user.Repository {
	if cfg.Storage.Driver == "mysql" {
		return mysql.NewUserRepository(db)
	}
	return memory.NewUserRepository()
}

func providePasswordHasher(cfg *config.Config) user.PasswordHasher {
	return user.NewPasswordHasher(cfg.Registry.HashPasswords, cfg.Registry.BcryptCost)
}

func provideRedisClient(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, func() {}, nil
	}
	return client, func() { _ = client.Close() }, nil
}

// provideCatalogCache 未启用redis或cache_ttl为0时不缓存
// 返回无类型的nil，避免带类型的nil接口
func provideCatalogCache(cfg *config.Config, client *goredis.Client) source.Cache {
	if client == nil || cfg.Catalog.CacheTTL <= 0 {
		return nil
	}
	return redis.NewCatalogCache(client, cfg.Catalog.CacheTTL)
}

func provideEventPublisher(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (appuser.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return appuser.NoopPublisher{}, func() {}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log, m)
	if err != nil {
		return nil, nil, err
	}
	return p, func() { _ = p.Close() }, nil
}

func provideEngine(
	cfg *config.Config,
	log *zap.Logger,
	m *metrics.Metrics,
	books *handler.BookHandler,
	async *handler.AsyncBookHandler,
	users *handler.UserHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	opts := router.Options{
		// 生产环境不暴露Swagger
		Swagger: cfg.Server.Mode != gin.ReleaseMode,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}
	return router.New(log, m, books, async, users, opts)
}
