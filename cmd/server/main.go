package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"provisioning-dashboard/internal/cfg"
	"provisioning-dashboard/internal/provisioning"
	"provisioning-dashboard/internal/store"
)

func main() {
	config := cfg.LoadConfig()
	logger := setupLogger(config.Env)

	var st store.Store = store.Unavailable{}
	if config.StoreConfigured() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoStore, err := store.ConnectMongo(connectCtx, config.DatabaseURL, config.DatabaseName)
		cancel()
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer mongoStore.Close(context.Background())

		if err := mongoStore.EnsureIndexes(context.Background()); err != nil {
			logger.Warn("failed to ensure indexes", "error", err)
		}
		st = mongoStore
	} else {
		logger.Warn("DATABASE_URL/DATABASE_NAME not set, store operations will fail")
	}

	var redisClient *redis.Client
	if config.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	employees := provisioning.NewEmployeeRepository(st)
	sessions := provisioning.NewSessionRepository(st)
	tasks := provisioning.NewTaskRepository(st)
	service := provisioning.NewService(employees, sessions, tasks)

	if config.StoreConfigured() {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := service.SeedEmployees(seedCtx); err != nil {
			logger.Warn("employee seeding failed", "error", err)
		}
		cancel()
	}

	handler := provisioning.NewHandler(service, st, config.StoreConfigured(), redisClient, logger)

	server := &http.Server{
		Addr:    ":" + config.Port,
		Handler: handler.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case "development", "":
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}
