package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/api/handler"
	"gestion-cours/backend/internal/api/router"
	"gestion-cours/backend/internal/repository"
	"gestion-cours/backend/internal/service"
	"gestion-cours/backend/pkg/database"
	"gestion-cours/backend/pkg/jwt"
	"gestion-cours/backend/pkg/logger"
	"gestion-cours/backend/pkg/redis"
	"gestion-cours/backend/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// ── 配置 ──
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// ── 日志 ──
	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	// ── 数据库 ──
	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("获取底层数据库连接失败", zap.Error(err))
	}
	defer sqlDB.Close()

	// ── 数据库迁移 ──
	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// ── Redis（可选，失败时降级运行）──
	rdb, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Warn("Redis 不可用，Token 黑名单与限流降级关闭", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ── JWT ──
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// ── 头像存储 ──
	photos, err := storage.NewPhotoStore(cfg.Upload.Dir)
	if err != nil {
		zapLogger.Fatal("初始化上传目录失败", zap.Error(err))
	}

	// ── 依赖注入 ──
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, photos, zapLogger)
	h := handler.NewHandler(cfg, svc)
	engine := router.New(cfg, h, jwtMgr, rdb, zapLogger)

	// ── HTTP 服务器 ──
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("服务器启动", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// ── 优雅关闭 ──
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("收到退出信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("服务器关闭异常", zap.Error(err))
	}

	zapLogger.Info("服务器已退出")
}
