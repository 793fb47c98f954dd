package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/wophi/wophi-api/internal/api"
	"github.com/wophi/wophi-api/internal/infrastructure/alma"
	"github.com/wophi/wophi-api/internal/infrastructure/config"
	"github.com/wophi/wophi-api/internal/infrastructure/db/postgres"
	"github.com/wophi/wophi-api/internal/infrastructure/db/redis"
	"github.com/wophi/wophi-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(postgres.Config{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	almaClient := alma.NewClient(alma.Config{
		SignupURL:     cfg.Alma.SignupURL,
		GetUserURL:    cfg.Alma.GetUserURL,
		UpdateUserURL: cfg.Alma.UpdateUserURL,
		DeleteUserURL: cfg.Alma.DeleteUserURL,
		Timeout:       cfg.Alma.Timeout,
	}, log)

	e := api.NewRouter(db, rdb, almaClient, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
