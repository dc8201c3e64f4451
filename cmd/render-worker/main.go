package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/dago-node-render/internal/config"
	"github.com/aescanero/dago-node-render/internal/eval/cel"
	"github.com/aescanero/dago-node-render/internal/eval/template"
	"github.com/aescanero/dago-node-render/internal/helpers"
	"github.com/aescanero/dago-node-render/internal/worker"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting render worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Initialize Redis client
	redisClient := redis.NewClient(cfg.RedisOptions())

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	// Build the helper catalog
	helperOpts := helpers.Options{
		Logger:          logger.Named("helpers"),
		DefaultLocale:   cfg.DefaultLocale,
		DefaultTimezone: cfg.DefaultTimezone,
	}
	if cfg.CELEnabled {
		helperOpts.Conditions = cel.NewEvaluator()
	} else {
		logger.Info("cel disabled (ifExpr helper will not be available)")
	}
	registry := helpers.Default(helperOpts)

	engine := template.NewEngine(registry, cfg.TemplateCacheSize, logger.Named("template"))
	logger.Info("template engine initialized", zap.Int("helpers", len(engine.Helpers())))

	// Initialize worker
	w := worker.NewWorker(cfg, redisClient, engine, logger)

	// Start worker
	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	// Start health server
	healthServer := worker.NewHealthServer(cfg.HealthPort, cfg.WorkerID, logger,
		worker.RedisCheck(redisClient),
		worker.ConsumerCheck(w),
		worker.RendererCheck(engine),
	)
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("render worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	select {
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, forcing exit")
	default:
		logger.Info("worker stopped gracefully")
	}
}

// initLogger initializes the logger
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
