//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/application/dispatch"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/source"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
)

// infrastructureSet 日志、指标、追踪、存储连接
var infrastructureSet = wire.NewSet(
	provideLogger,
	provideMetrics,
	provideTracing,
	provideDB,
	provideRedisClient,
	provideEventPublisher,
)

// repositorySet 仓储与数据源
var repositorySet = wire.NewSet(
	provideBookRepository,
	provideUserRepository,
	provideCatalogCache,
	source.New,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	providePasswordHasher,
	user.NewService,
	book.NewService,
)

// applicationSet 用例与调度
var applicationSet = wire.NewSet(
	appbook.NewQueryBooksUseCase,
	appbook.NewAsyncQueryUseCase,
	appuser.NewRegisterUseCase,
	dispatch.NewDispatcher,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAsyncBookHandler,
	handler.NewUserHandler,
	provideEngine,
)

// InitializeApp 初始化整个应用
// cleanup按依赖的逆序关闭连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
