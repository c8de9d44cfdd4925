package dispatch

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Intent 查询意图
type Intent string

const (
	IntentListAll       Intent = "list-all"
	IntentGetByID       Intent = "get-by-id"
	IntentGetByAuthor   Intent = "get-by-author"
	IntentGetByTitle    Intent = "get-by-title"
	IntentGetReviews    Intent = "get-reviews"
	IntentRegister      Intent = "register"
	IntentAsyncListAll  Intent = "async-list-all"
	IntentAsyncGetByID  Intent = "async-get-by-id"
	IntentAsyncByAuthor Intent = "async-get-by-author"
	IntentAsyncByTitle  Intent = "async-get-by-title"
)

// Normalize 意图名不区分大小写，忽略首尾空白
func (i Intent) Normalize() Intent {
	return Intent(strings.ToLower(strings.TrimSpace(string(i))))
}

// Intents 全部已知意图
var Intents = []Intent{
	IntentListAll, IntentGetByID, IntentGetByAuthor, IntentGetByTitle, IntentGetReviews,
	IntentRegister,
	IntentAsyncListAll, IntentAsyncGetByID, IntentAsyncByAuthor, IntentAsyncByTitle,
}

// Request 调度请求，按意图使用对应字段
type Request struct {
	Intent   Intent
	ISBN     string
	Author   string
	Title    string
	Username string
	Password string
}

// 成功提示
const (
	msgSuccess    = "success"
	msgRegistered = "注册成功，现在可以登录了"
)

// Dispatcher 把意图路由到目录/注册用例，并把结果统一成Outcome
// 内部错误的细节只写日志，不出现在Outcome里
type Dispatcher struct {
	query    *appbook.QueryBooksUseCase
	async    *appbook.AsyncQueryUseCase
	register *appuser.RegisterUseCase
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher 创建调度器
func NewDispatcher(
	query *appbook.QueryBooksUseCase,
	async *appbook.AsyncQueryUseCase,
	register *appuser.RegisterUseCase,
	log *zap.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	return &Dispatcher{query: query, async: async, register: register, log: log, metrics: m}
}

// Dispatch 执行一次调度
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Outcome {
	start := time.Now()
	req.Intent = req.Intent.Normalize()

	payload, err := d.route(ctx, req)
	var out Outcome
	if err != nil {
		out = Failure(err)
	} else {
		msg := msgSuccess
		if req.Intent == IntentRegister {
			msg = msgRegistered
		}
		out = Success(msg, payload)
	}

	if out.Kind == KindInternalError {
		d.log.Error("请求处理失败",
			zap.String("intent", string(req.Intent)),
			zap.Int("code", out.Code),
			zap.Error(err))
	}

	d.metrics.ObserveDispatch(metricIntent(req.Intent), out.Kind.String(), time.Since(start))
	return out
}

func (d *Dispatcher) route(ctx context.Context, req Request) (interface{}, error) {
	switch req.Intent {
	case IntentListAll:
		return d.query.ListAll(ctx)
	case IntentGetByID:
		return d.query.GetByISBN(ctx, req.ISBN)
	case IntentGetByAuthor:
		return d.query.ByAuthor(ctx, req.Author)
	case IntentGetByTitle:
		return d.query.ByTitle(ctx, req.Title)
	case IntentGetReviews:
		return d.query.Reviews(ctx, req.ISBN)

	case IntentRegister:
		return d.register.Execute(ctx, appuser.RegisterRequest{
			Username: req.Username,
			Password: req.Password,
		})

	case IntentAsyncListAll:
		return d.async.ListAll(ctx).Await(ctx)
	case IntentAsyncGetByID:
		return d.async.GetByISBN(ctx, req.ISBN).Await(ctx)
	case IntentAsyncByAuthor:
		return d.async.ByAuthor(ctx, req.Author).Await(ctx)
	case IntentAsyncByTitle:
		return d.async.ByTitle(ctx, req.Title).Await(ctx)

	default:
		return nil, apperrors.ErrUnknownIntent
	}
}

// metricIntent 未知意图统一记为unknown，避免标签基数失控
func metricIntent(intent Intent) string {
	for _, known := range Intents {
		if intent == known {
			return string(intent)
		}
	}
	return "unknown"
}
