package app

import (
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/accel-parser/internal/config"
	"github.com/taoyao-code/accel-parser/internal/metrics"
	"github.com/taoyao-code/accel-parser/internal/protocol/g4"
	"github.com/taoyao-code/accel-parser/internal/session"
)

// NewSession 按解码配置构造会话，解码器日志带会话ID
func NewSession(id string, cfg cfgpkg.DecoderConfig, logger *zap.Logger, m *metrics.AppMetrics) *session.Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	dec := g4.NewDecoder(
		g4.WithLogger(logger.With(zap.String("session", id))),
		g4.WithZAxisOffset(cfg.ZAxisOffset),
	)
	logger.Info("decoder initialized",
		zap.String("session", id),
		zap.Bool("z_axis_offset", cfg.ZAxisOffset))
	return session.New(id, dec, logger, m)
}
