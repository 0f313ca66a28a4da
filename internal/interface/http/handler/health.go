package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/response"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck 依赖探活，返回nil表示可用
type HealthCheck func(ctx context.Context) error

// HealthHandler 健康检查
type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler 创建健康检查处理器，checks的key是依赖名（database、redis）
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// HealthResponse 各依赖状态
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health 健康检查
// @Summary      健康检查
// @Tags         运维
// @Produce      json
// @Success      200 {object} response.Response{data=HealthResponse}
// @Failure      503 {object} response.Response{data=HealthResponse}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	result := HealthResponse{Status: "ok", Dependencies: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.FromContext(ctx).WarnContext(ctx, "health check failed", "dependency", name, "error", err)
			result.Dependencies[name] = "down"
			result.Status = "degraded"
			continue
		}
		result.Dependencies[name] = "up"
	}

	if result.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Message: "Library Management Backend is degraded",
			Data:    result,
		})
		return
	}
	response.Success(c, "Library Management Backend is running", result)
}
