package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taoyao-code/accel-parser/internal/api"
	"github.com/taoyao-code/accel-parser/internal/api/middleware"
	"github.com/taoyao-code/accel-parser/internal/app"
	cfgpkg "github.com/taoyao-code/accel-parser/internal/config"
	"github.com/taoyao-code/accel-parser/internal/metrics"
	"github.com/taoyao-code/accel-parser/internal/report"
	"github.com/taoyao-code/accel-parser/internal/source"
)

// Options 启动时可替换的依赖（测试用）
type Options struct {
	// Stdout 统计输出，默认丢弃
	Stdout io.Writer
	// OpenPort 串口打开函数，nil 时使用真实串口
	OpenPort source.PortOpener
	// Now 报告表头时间
	Now func() time.Time
}

// Run 统一启动流程：输入 → 解码会话 → 报告，可选运维 HTTP
// ctx 取消视为正常结束，仍会输出已处理部分的统计
func Run(ctx context.Context, cfg *cfgpkg.Config, log *zap.Logger, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sessionID := app.GenerateSessionID(app.SourceName(cfg.Input))
	log.Info("starting accel parser",
		zap.String("session", sessionID),
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env))

	// ========== 阶段1: 初始化基础组件 ==========
	reg, appm := app.NewMetrics()
	sess := app.NewSession(sessionID, cfg.Decoder, log, appm)

	// ========== 阶段2: 打开输入与报告 ==========
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, err := app.OpenSource(runCtx, cfg.Input, opts.OpenPort, log)
	if err != nil {
		log.Error("open input failed", zap.Error(err))
		return err
	}
	// 串口读取会阻塞，取消时关闭输入以唤醒读循环
	go func() {
		<-runCtx.Done()
		_ = src.Close()
	}()

	rep, err := report.Create(cfg.Output.Report, opts.Now())
	if err != nil {
		log.Error("create report failed", zap.Error(err))
		return err
	}
	log.Info("report opened", zap.String("path", cfg.Output.Report))

	// ========== 阶段3: 启动HTTP服务（非阻塞，可选）==========
	if cfg.HTTP.Enable {
		if cfg.App.Env != "dev" {
			gin.SetMode(gin.ReleaseMode)
		}
		var metricsHandler http.Handler
		if cfg.Metrics.Enable {
			metricsHandler = metrics.Handler(reg)
		}
		httpSrv := app.NewHTTPServer(cfg.HTTP, cfg.Metrics.Path, metricsHandler, sess.Running)
		httpSrv.Register(func(r *gin.Engine) {
			authCfg := middleware.AuthConfig{
				APIKeys: cfg.API.Auth.APIKeys,
				Enabled: cfg.API.Auth.Enabled,
			}
			api.RegisterSessionRoutes(r, sess, authCfg, log)
		})

		go func() {
			if err := httpSrv.Start(); err != nil {
				log.Error("http server error", zap.Error(err))
			}
		}()
		log.Info("http server started", zap.String("addr", cfg.HTTP.Addr))

		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				log.Warn("http server shutdown error", zap.Error(err))
			}
			log.Info("http server stopped")
		}()
	}

	// ========== 阶段4: 解码循环（阻塞）==========
	runErr := sess.Run(runCtx, src, rep)
	if errors.Is(runErr, context.Canceled) && ctx.Err() != nil {
		log.Info("decoding interrupted")
		runErr = nil
	}

	if err := rep.Close(); err != nil {
		log.Error("close report failed", zap.Error(err))
		if runErr == nil {
			runErr = fmt.Errorf("close report: %w", err)
		}
	}
	log.Info("report written", zap.String("path", cfg.Output.Report), zap.Int("lines", rep.Lines()))

	// ========== 阶段5: 输出统计 ==========
	if cfg.Output.Statistics {
		if err := report.PrintStatistics(opts.Stdout, sess.Stats()); err != nil {
			log.Warn("print statistics failed", zap.Error(err))
		}
	}

	return runErr
}
