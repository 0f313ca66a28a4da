package mq

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/xiebiao/library/pkg/metrics"
)

// BreakerSettings 熔断参数
type BreakerSettings struct {
	// MaxFailures 连续失败次数达到该值后熔断
	MaxFailures uint32
	// OpenTimeout 熔断后多久进入半开状态
	OpenTimeout time.Duration
}

// BreakerPublisher 为消息发布加熔断保护
// RabbitMQ不可用时快速失败，避免每次归还都等待发布超时
type BreakerPublisher struct {
	next    MessagePublisher
	breaker *gobreaker.CircuitBreaker
	name    string
}

// NewBreakerPublisher 包装一个发布者
func NewBreakerPublisher(name string, next MessagePublisher, s BreakerSettings) *BreakerPublisher {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})

	return &BreakerPublisher{next: next, breaker: cb, name: name}
}

// Publish 经熔断器发布
// 熔断打开时返回gobreaker.ErrOpenState
func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(ctx, routingKey, message)
	})

	result := resultLabel(err)
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		result = "rejected"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": p.name, "result": result})
	return err
}

// State 当前熔断状态
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}
