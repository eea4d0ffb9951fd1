package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/lib/pq"

	"printquote/internal/catalog"
	"printquote/internal/catalog/migrations"
	"printquote/internal/config"
	"printquote/internal/server"
	"printquote/pkg/logger"
	"printquote/pkg/redis"
)

// ENTRY POINT

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	defer redisClient.Close()

	store, err := catalog.NewStore(ctx, catalog.Config{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init catalog store", zap.Error(err))
	}
	defer store.Close()

	if err := migrations.RunMigrations(ctx, store.DB(), "postgres"); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	srv := server.New(store, zapLogger)

	if err := srv.Run(ctx, cfg.HTTPAddr); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}

	zapLogger.Info("Server shutdown gracefully")
}
