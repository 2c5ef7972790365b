package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"teachove/backend/config"
	"teachove/backend/internal/api/handler"
	"teachove/backend/internal/api/router"
	"teachove/backend/internal/editor"
	"teachove/backend/internal/service"
	"teachove/backend/internal/upstream"
	"teachove/backend/pkg/jwt"
	applogger "teachove/backend/pkg/logger"
	"teachove/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log, "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("控制台启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：失败时不缓存名册、不限流）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，名册缓存与限流将不可用", zap.Error(err))
		rdb = nil
	}

	// 4. 远端 API 客户端
	client := upstream.NewClient(&cfg.Upstream, logger)
	var roster upstream.RosterProvider = client
	if rdb != nil {
		roster = upstream.NewCachedRoster(client, rdb, cfg.Redis.RosterTTL, logger)
	}

	// 5. 编辑页面会话与空闲回收
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store := editor.NewStore(cfg.Screen.IdleTTL)
	go store.Run(ctx, time.Minute, func(removed int) {
		logger.Info("回收空闲编辑会话", zap.Int("removed", removed), zap.Int("remaining", store.Len()))
	})

	// 6. 依赖注入: Upstream → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc, err := service.NewService(cfg, client, roster, store, logger)
	if err != nil {
		logger.Fatal("初始化服务失败", zap.Error(err))
	}
	h := handler.NewHandler(svc, cfg.School.AcademicYear)

	// 7. 初始化路由
	engine, err := router.Setup(cfg, h, jwtMgr, rdb, logger)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
