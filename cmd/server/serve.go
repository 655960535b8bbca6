package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beluleung/ISOM5260-project/internal/api/handler"
	"github.com/beluleung/ISOM5260-project/internal/api/middleware"
	"github.com/beluleung/ISOM5260-project/internal/api/router"
	"github.com/beluleung/ISOM5260-project/internal/repository"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/database"
	"github.com/beluleung/ISOM5260-project/pkg/metrics"
	"github.com/beluleung/ISOM5260-project/pkg/redis"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE:  serveRun,
	}
}

func serveRun(_ *cobra.Command, _ []string) error {
	// 1. 配置与日志
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 2. 连接数据库并做连通性检查
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	defer database.Close(db)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = database.HealthCheck(pingCtx, db)
	cancelPing()
	if err != nil {
		return fmt.Errorf("数据库不可达: %w", err)
	}
	logger.Info("数据库连接成功")

	// 2.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 3. 连接 Redis（可选：失败时降级运行，写接口不限流）
	var (
		limiter   middleware.RateLimiter
		redisPing handler.Pinger
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，限流功能将不可用", zap.Error(err))
	} else {
		defer rdb.Close()
		limiter = rdb
		redisPing = rdb.Ping
	}

	// 4. 指标
	m := metrics.New()

	// 5. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db,
		repository.WithStatementTimeout(cfg.Query.StatementTimeout),
		repository.WithReadOnlyRole(cfg.Query.ReadOnlyRole),
	)
	svc := service.NewService(repo, m, logger)
	health := handler.NewHealthHandler(func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	}, redisPing)
	h := handler.NewHandler(svc, health)

	// 6. 初始化路由
	engine := router.Setup(cfg, h, m, limiter, logger)

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 8. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP 服务器异常: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
	return nil
}
