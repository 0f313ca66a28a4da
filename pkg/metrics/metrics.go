// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三组：
//   - HTTP请求：总数、耗时、处理中的请求数
//   - 借阅台账：借出、归还、缴费的次数与耗时，罚款金额
//   - 事件发布：消息发布次数、熔断器状态
//
// 使用方式：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	err := doIssue(ctx)
//	metrics.ObserveLedgerOperation("issue", start, err)
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，避免高基数）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// LedgerOperationsTotal 借阅台账操作总数
	// 标签：operation(issue/return/pay_fine)、result(success/failure)
	LedgerOperationsTotal *prometheus.CounterVec

	// LedgerOperationDuration 借阅台账操作耗时（含事务与行锁等待）
	LedgerOperationDuration *prometheus.HistogramVec

	// FinesAssessedTotal 归还时产生的罚款累计金额
	FinesAssessedTotal prometheus.Counter

	// FinesPaidTotal 已缴纳的罚款累计金额
	FinesPaidTotal prometheus.Counter

	// CircuitBreakerState 熔断器状态 0=CLOSED, 1=HALF_OPEN, 2=OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key、result(success/failure)
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 可重复调用，只有第一次生效
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时(秒)",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		LedgerOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_ledger_operations_total",
				Help: "借阅台账操作总数",
			},
			[]string{"operation", "result"},
		)

		LedgerOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "library_ledger_operation_duration_seconds",
				Help:    "借阅台账操作耗时(秒)",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		)

		FinesAssessedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "library_fines_assessed_total",
				Help: "归还时产生的罚款累计金额",
			},
		)

		FinesPaidTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "library_fines_paid_total",
				Help: "已缴纳的罚款累计金额",
			},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态(0=CLOSED, 1=HALF_OPEN, 2=OPEN)",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)
	})
}

// ObserveLedgerOperation 记录一次台账操作的结果与耗时
func ObserveLedgerOperation(operation string, start time.Time, err error) {
	if LedgerOperationsTotal == nil {
		return
	}
	LedgerOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	LedgerOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// AddFineAssessed 累加产生的罚款
func AddFineAssessed(amount int64) {
	if FinesAssessedTotal != nil && amount > 0 {
		FinesAssessedTotal.Add(float64(amount))
	}
}

// AddFinePaid 累加缴纳的罚款
func AddFinePaid(amount int64) {
	if FinesPaidTotal != nil && amount > 0 {
		FinesPaidTotal.Add(float64(amount))
	}
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
