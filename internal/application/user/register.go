package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// EventUserRegistered 注册成功事件的类型（同时作为routing key）
const EventUserRegistered = "user.registered"

// EventPublisher 事件发布接口（mq.Publisher实现）
type EventPublisher interface {
	Publish(ctx context.Context, evt mq.Event) error
}

// NoopPublisher 未启用MQ时使用
type NoopPublisher struct{}

// Publish 什么也不做
func (NoopPublisher) Publish(context.Context, mq.Event) error { return nil }

// RegisterUseCase 用户注册用例
// 1. 唯一性校验和追加由领域服务保证原子性
// 2. 注册成功后发布user.registered事件，发布失败只记日志，不影响注册结果
type RegisterUseCase struct {
	userService user.Service
	publisher   EventPublisher
	log         *zap.Logger
	metrics     *metrics.Metrics
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, publisher EventPublisher, log *zap.Logger, m *metrics.Metrics) *RegisterUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &RegisterUseCase{
		userService: userService,
		publisher:   publisher,
		log:         log,
		metrics:     m,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Password string
}

// RegisterResponse 注册响应，不返回密码
type RegisterResponse struct {
	Username string `json:"username"`
}

// UserRegisteredPayload user.registered事件内容
type UserRegisteredPayload struct {
	Username     string `json:"username"`
	RegisteredAt string `json:"registered_at"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	uc.metrics.IncUserRegistered()

	evt := mq.NewEvent(EventUserRegistered, UserRegisteredPayload{
		Username:     u.Username,
		RegisteredAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.log.Warn("发布注册事件失败",
			zap.String("username", u.Username),
			zap.String("event_id", evt.ID),
			zap.Error(err))
	}

	return &RegisterResponse{Username: u.Username}, nil
}
