// Package mq RabbitMQ事件发布
//
// 事件统一使用Event信封，body为JSON：
//
//	{"id":"...","type":"user.registered","occurred_at":"...","payload":{...}}
//
// routing key即事件类型，下游按topic绑定自己关心的事件
package mq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Event 事件信封
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// NewEvent 创建事件，ID使用UUID
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// channel amqp.Channel中发布用到的部分，测试时替换
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher 事件发布者
// amqp.Channel不是并发安全的，发布时加锁串行化
type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       channel
	exchange string
	log      *zap.Logger
	metrics  *metrics.Metrics
}

// NewPublisher 连接RabbitMQ并声明持久化的Exchange，m为nil时不记录指标
func NewPublisher(url, exchange, exchangeType string, log *zap.Logger, m *metrics.Metrics) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// durable=true, autoDelete=false, internal=false, noWait=false
	if err := ch.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	log.Info("消息发布者已创建", zap.String("exchange", exchange), zap.String("type", exchangeType))

	return &Publisher{conn: conn, ch: ch, exchange: exchange, log: log, metrics: m}, nil
}

// Exchange 发布目标Exchange
func (p *Publisher) Exchange() string { return p.exchange }

// Publish 发布事件，routing key为事件类型
func (p *Publisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, evt.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    evt.ID,
		Type:         evt.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    evt.OccurredAt,
	})
	p.mu.Unlock()
	p.metrics.IncMessagePublished(p.exchange, evt.Type, err)
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	p.log.Debug("消息已发布", zap.String("routing_key", evt.Type), zap.String("id", evt.ID))
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
