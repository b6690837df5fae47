package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/salon/internal/cleanup"
	"github.com/joshua-takyi/salon/internal/config"
	"github.com/joshua-takyi/salon/internal/connect"
	"github.com/joshua-takyi/salon/internal/container"
	"github.com/joshua-takyi/salon/internal/routes"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadEnv()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting salon API server", "environment", cfg.Environment, "timezone", cfg.Timezone)

	mongoClient, err := connect.MongoDBConnect(cfg.MongoURI())
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully")

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = connect.RedisConnect(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting per instance", "error", err)
			rdb = nil
		} else {
			logger.Info("Connected to Redis successfully")
		}
	}

	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryEnabled() {
		cld, err = connect.CloudinaryCredentials(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Error("Failed to connect to Cloudinary", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("Cloudinary is not configured, gallery uploads are disabled")
	}

	appContainer, err := container.NewContainer(cfg, logger, mongoClient, rdb, cld)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	err = appContainer.Repo.EnsureIndexes(indexCtx)
	cancelIndex()
	if err != nil {
		logger.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	scheduler, err := cleanup.NewScheduler(appContainer.Sweeper, cfg.CleanupInterval, logger)
	if err != nil {
		logger.Error("Failed to schedule cleanup", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	if err := scheduler.RunNow(); err != nil {
		logger.Warn("Initial cleanup did not start", "error", err)
	}

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := scheduler.Shutdown(); err != nil {
		logger.Error("Error stopping cleanup scheduler", "error", err)
	}
	if err := appContainer.Close(ctx); err != nil {
		logger.Error("Pending emails were not sent", "error", err)
	}
	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: logLevel(cfg)}

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func logLevel(cfg *config.Config) slog.Level {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if cfg.IsDevelopment() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
