package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskify/taskify-api/internal/api"
	"github.com/taskify/taskify-api/internal/core/security"
	"github.com/taskify/taskify-api/internal/infrastructure/config"
	mongodb "github.com/taskify/taskify-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskify/taskify-api/internal/infrastructure/db/redis"
	"github.com/taskify/taskify-api/internal/infrastructure/seed"
	"github.com/taskify/taskify-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Taskify API
// @version      1.0
// @description  Multi-tenant task management API with role-based access control.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "taskify-api",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		appLog.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			appLog.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		appLog.Fatal().Err(err).Msg("ensure indexes failed")
	}

	// The login throttle is the only Redis consumer; start without it
	// rather than refuse to boot.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		appLog.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	hasher := security.NewHasher(security.HashParams{
		Time:        cfg.Argon2.Time,
		Memory:      cfg.Argon2.Memory,
		Parallelism: cfg.Argon2.Parallelism,
	})
	seeder := seed.New(
		mongodb.NewUserRepository(db),
		mongodb.NewRoleRepository(db),
		mongodb.NewPermissionRepository(db),
		hasher,
		appLog,
	)
	if err := seeder.Run(ctx, seed.AdminAccount{
		Name:     cfg.Seed.AdminName,
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}); err != nil {
		appLog.Fatal().Err(err).Msg("seed failed")
	}

	e := api.NewRouter(db, rdb, cfg, appLog)

	go func() {
		appLog.Info().Str("port", cfg.Port).Msg("api server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error().Err(err).Msg("server run failed")
		}
	}()

	<-ctx.Done()
	appLog.Info().Msg("shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLog.Error().Err(err).Msg("http shutdown failed")
	}
}
