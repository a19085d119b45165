package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/accel-parser/internal/api/middleware"
	"github.com/taoyao-code/accel-parser/internal/session"
)

// RegisterSessionRoutes 注册解码会话运维路由
func RegisterSessionRoutes(
	r *gin.Engine,
	ctrl session.Controller,
	authCfg middleware.AuthConfig,
	logger *zap.Logger,
) {
	if r == nil || ctrl == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := NewSessionHandler(ctrl, logger)

	api := r.Group("/api")
	api.Use(middleware.APIKeyAuth(authCfg, logger))
	if !authCfg.Enabled {
		logger.Warn("api authentication disabled - only for development!")
	}

	api.GET("/stats", handler.GetStats)
	api.POST("/z-offset/toggle", handler.ToggleZAxisOffset)

	logger.Info("session routes registered", zap.Int("endpoints", 2))
}
