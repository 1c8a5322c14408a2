package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/userhub/account-api/internal/api"
	"github.com/userhub/account-api/internal/infrastructure/config"
	mongodb "github.com/userhub/account-api/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/account-api/internal/infrastructure/db/redis"
	"github.com/userhub/account-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// MongoDB connects lazily on first use; probing here surfaces a bad URL
	// early but a transient outage at boot is not fatal — the next request
	// re-dials.
	mgr := mongodb.NewManager(mongodb.Config{
		URI:      cfg.Mongo.URL,
		Database: cfg.Mongo.Database,
	}, logg)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mgr.Close(shutdownCtx)
	}()

	userRepo := mongodb.NewUserRepository(mgr)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logg.Warn().Err(err).Msg("could not ensure indexes, will rely on lazy reconnect")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	if cfg.JWTSecret == "" {
		logg.Warn().Msg("JWT_SECRET is empty, issued tokens are not secure")
	}

	e := api.NewRouter(mgr, rdb, cfg.JWTSecret, logg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logg.Info().Str("port", cfg.Port).Msg("account api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
