package controller

import (
	"context"
	"cyberlearn_backend/internal/generation"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 3 * time.Second

type HealthController struct {
	Store     store.Store
	Generator generation.ContentGenerator
	MockMode  bool
}

func NewHealthController(s store.Store, g generation.ContentGenerator, mockMode bool) *HealthController {
	return &HealthController{Store: s, Generator: g, MockMode: mockMode}
}

func status(ok bool) string {
	if ok {
		return "connected"
	}
	return "disconnected"
}

// @Summary Health check
// @Description Reports store and generation backend reachability
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	dbUp := c.Store.Ping(reqCtx) == nil
	genUp := c.Generator.Healthy(reqCtx)

	overall := "healthy"
	if !dbUp {
		overall = "degraded"
	}
	ollama := status(genUp)
	if c.MockMode {
		ollama = "mock"
	}

	util.Success(ctx, gin.H{
		"status":    overall,
		"ollama":    ollama,
		"database":  status(dbUp),
		"store":     c.Store.Name(),
		"model":     c.Generator.Model(),
		"generator": c.Generator.Name(),
		"mock_mode": c.MockMode,
	})
}
