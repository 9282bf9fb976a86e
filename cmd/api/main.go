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

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"tokenvest/internal/config"
	"tokenvest/internal/database"
	"tokenvest/internal/idempotency"
	"tokenvest/internal/logger"
	"tokenvest/internal/server"
	"tokenvest/internal/validator"
)

// @title           Tokenvest API
// @version         1.0
// @description     Tokenvest is a marketplace for buying fractional tokens of real estate and business investments.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	keys, closeKeys, err := idempotencyStore(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeKeys()

	svc := server.NewServices(dbManager.DB(), keys)

	if appConfig.AdminUsername != "" && appConfig.AdminPassword != "" {
		admin, err := svc.Users.EnsureAdmin(appConfig.AdminUsername, appConfig.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
		log.Infow("admin account ready", "username", admin.Username)
	}

	router := server.NewRouter(svc, server.Options{
		CORSOrigin:     appConfig.CORSOrigin,
		RequestTimeout: appConfig.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting Tokenvest API on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// idempotencyStore connects to Redis when REDIS_ADDR is set and falls back to
// a process-local store otherwise.
func idempotencyStore(ctx context.Context, cfg *config.Config) (idempotency.Store, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Get().Warn("REDIS_ADDR not set, idempotency keys are kept in memory")
		return idempotency.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Get().Infow("idempotency store connected", "addr", cfg.RedisAddr)
	return idempotency.NewRedisStore(client), func() { _ = client.Close() }, nil
}
