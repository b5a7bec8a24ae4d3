package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/cache"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/handlers"
	"github.com/taskflow-dev/taskflow/internal/router"
	"github.com/taskflow-dev/taskflow/internal/store"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	st, closeStore, err := db.OpenStore(connectCtx, cfg)
	cancel()

	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	st = withUsersCache(ctx, st, cfg)

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	r := router.NewRouter(handlers.New(st, issuer), issuer, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// withUsersCache wraps st with the Redis user directory cache when REDIS_URL
// is set. An unreachable Redis is logged and the cache still degrades to
// direct store reads.
func withUsersCache(ctx context.Context, st store.Store, cfg *config.Config) store.Store {
	if cfg.RedisURL == "" {
		return st
	}

	opts, err := redis.ParseURL(cfg.RedisURL)

	if err != nil {
		log.WithError(err).Warn("invalid REDIS_URL, users cache disabled")
		return st
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable")
	}

	return cache.NewStore(st, client, cfg.UsersCacheTTL)
}
