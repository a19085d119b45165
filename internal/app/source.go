package app

import (
	"context"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/accel-parser/internal/config"
	"github.com/taoyao-code/accel-parser/internal/source"
)

// OpenSource 打开帧输入：配置了串口则读串口，否则回放文件
// open 为 nil 时使用真实串口
func OpenSource(ctx context.Context, cfg cfgpkg.InputConfig, open source.PortOpener, logger *zap.Logger) (*source.LineReader, error) {
	if cfg.Serial.Port != "" {
		r, err := source.OpenSerial(ctx, cfg.Serial, open)
		if err != nil {
			return nil, err
		}
		logger.Info("serial input opened",
			zap.String("port", cfg.Serial.Port),
			zap.Int("baud", cfg.Serial.BaudRate))
		return r, nil
	}

	r, err := source.OpenFile(cfg.File)
	if err != nil {
		return nil, err
	}
	if p := source.NewPacer(cfg.ReplayRate, cfg.ReplayBurst); p != nil {
		r = r.WithPacer(p)
		logger.Info("file replay paced", zap.Float64("frames_per_sec", cfg.ReplayRate))
	}
	logger.Info("file input opened", zap.String("file", cfg.File))
	return r, nil
}
