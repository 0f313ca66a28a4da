package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/response"
	"github.com/xiebiao/library/pkg/tracing"
)

const (
	headerRequestID = "X-Request-ID"
	ctxKeyRequestID = "request_id"
	tracerName      = "library/http"

	slowRequestThreshold = 3 * time.Second
)

// Logger 请求日志中间件
// 1. 生成请求ID（沿用上游传入的X-Request-ID），写回响应头
// 2. 为请求开启一个Span，后续用例的Span挂在它下面
// 3. 把带request_id/trace_id的Logger放进请求Context
// 4. 请求结束后输出一条结构化日志
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ctxKeyRequestID, requestID)
		c.Header(headerRequestID, requestID)

		start := time.Now()
		ctx, span := tracing.StartSpan(c.Request.Context(), tracerName, c.Request.Method+" "+routeOf(c))
		defer span.End()

		l := slog.Default().With("request_id", requestID)
		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			l = l.With("trace_id", traceID)
		}
		c.Request = c.Request.WithContext(logger.WithContext(ctx, l))

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", routeOf(c),
			"status", status,
			"latency", latency,
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		reqCtx := c.Request.Context()
		switch {
		case status >= 500:
			l.ErrorContext(reqCtx, "request completed", attrs...)
		case latency > slowRequestThreshold:
			l.WarnContext(reqCtx, "slow request", attrs...)
		default:
			l.InfoContext(reqCtx, "request completed", attrs...)
		}
	}
}

// Recovery 捕获panic，返回统一的500响应
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.Request.Context()
				logger.FromContext(ctx).ErrorContext(ctx, "panic recovered",
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
				response.Abort(c, apperrors.ErrInternal)
			}
		}()
		c.Next()
	}
}

// GetRequestID 获取当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxKeyRequestID)
}

// routeOf 返回路由模板，未匹配时返回unmatched，避免把任意路径写进日志字段和指标标签
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
