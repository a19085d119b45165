package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/taoyao-code/accel-parser/internal/app/bootstrap"
	cfgpkg "github.com/taoyao-code/accel-parser/internal/config"
	"github.com/taoyao-code/accel-parser/internal/logging"
)

func main() {
	// 1) 解析命令行
	fs := cfgpkg.Flags("accelparser")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	configPath, _ := fs.GetString("config")

	// 2) 加载配置
	cfg, err := cfgpkg.Load(configPath, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	// 3) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	log := zap.L()

	// 4) 信号处理，Ctrl-C 结束解码并输出已有统计
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.Run(ctx, cfg, log, bootstrap.Options{Stdout: os.Stdout}); err != nil {
		log.Error("accel parser failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
