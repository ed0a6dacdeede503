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

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-roles-api/internal/core/config"
	"user-roles-api/internal/core/database"
	"user-roles-api/internal/core/logger"
	"user-roles-api/internal/core/server"
	"user-roles-api/internal/feature/role"
	"user-roles-api/internal/feature/user"
	"user-roles-api/internal/repo"
	"user-roles-api/internal/service"
	"user-roles-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}
	if cfg.DB.SeedRoles {
		n, err := database.SeedRoles(context.Background(), db)
		if err != nil {
			log.Fatal("seed roles failed", zap.Error(err))
		}
		log.Info("roles seeded", zap.Int64("inserted", n))
	}

	// 依赖在这里显式组装
	userRepo := repo.NewUserRepo(db, log)
	roleRepo := repo.NewRoleRepo(db, log)
	userSvc := service.NewUserService(userRepo)

	reg := router.NewRegistry(
		user.NewModule(userSvc, roleRepo, log),
		role.NewModule(roleRepo, log),
	)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("db handle", zap.Error(err))
	}

	h := cfg.App.HTTP
	r := router.NewAPIEngine(log, router.Options{
		RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
		MaxBodyBytes:   h.MaxBodyBytes,
		MaxConcurrency: h.MaxConcurrency,
	}, sqlDB, reg)

	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(h.Port)
	log.Info("user api starting",
		zap.String("env", cfg.App.Env),
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	_ = sqlDB.Close()
	log.Info("user api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.OptsFrom(cfg.DB), l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
