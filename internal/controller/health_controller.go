package controller

import (
	"net/http"
	"time"

	"learnai_backend/internal/util"
	"learnai_backend/pkg/logger"
	"learnai_backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthController struct {
	Store     *storage.Store
	StartedAt time.Time
}

func NewHealthController(store *storage.Store) *HealthController {
	return &HealthController{Store: store, StartedAt: time.Now()}
}

// @Summary 健康检查
// @Description 检查服务及存储后端状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response "存储不可用"
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	start := time.Now()
	err := c.Store.Ping(ctx.Request.Context())
	latency := time.Since(start)
	if err != nil {
		logger.Log.Warn("Storage health check failed",
			zap.String("backend", c.Store.Provider.Name()),
			zap.Duration("latency", latency),
			zap.Error(err))
		util.Error(ctx, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(c.StartedAt).Seconds()),
		"storage": gin.H{
			"backend":   c.Store.Provider.Name(),
			"latencyMs": latency.Milliseconds(),
		},
	})
}
