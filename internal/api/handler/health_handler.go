package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/internal/dto"
)

// Pinger 依赖的连通性检查
type Pinger func(ctx context.Context) error

// HealthHandler 健康检查
type HealthHandler struct {
	database Pinger
	redis    Pinger // 可为 nil
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(database, redis Pinger) *HealthHandler {
	return &HealthHandler{database: database, redis: redis}
}

// Check 健康检查
// GET /health
// 数据库不可达时返回 503；Redis 仅用于限流，不可达只标记 degraded
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "up"}

	if err := h.database(c.Request.Context()); err != nil {
		resp.Status = "unavailable"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if h.redis != nil {
		resp.Redis = "up"
		if err := h.redis(c.Request.Context()); err != nil {
			resp.Status = "degraded"
			resp.Redis = "down"
		}
	}

	c.JSON(http.StatusOK, resp)
}
