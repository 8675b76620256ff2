package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"jeopsu/internal/amqp"
	"jeopsu/internal/config"
	apphttp "jeopsu/internal/http"
	"jeopsu/internal/insight"
	"jeopsu/internal/register"
	"jeopsu/internal/services"
	"jeopsu/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Choose the persistence backend for the register.
	var repo register.Repository
	switch cfg.DataBackend {
	case config.BackendSQLite:
		sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		fileRepo, err := storage.NewFileRepository(cfg.ReceiptsFile)
		if err != nil {
			logger.Error("Failed to initialize file repository", "error", err, "path", cfg.ReceiptsFile)
			os.Exit(1)
		}
		repo = fileRepo
		logger.Info("Initialized file backend", "path", cfg.ReceiptsFile)
	}

	reg := register.New(repo)
	reg.LoadInitial(context.Background())

	// Publish change events only when a broker is configured.
	var events services.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		events = amqpClient
		logger.Info("AMQP change events enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	svc := services.NewReceiptService(reg, events)
	if amqpClient != nil {
		svc.SetCloser(amqpClient.Close)
	}

	// Insight generation is optional; the endpoint reports 503 without it.
	var insighter apphttp.Insighter
	if cfg.OpenAIAPIKey != "" {
		insighter = insight.NewGenerator(cfg.OpenAIAPIKey, cfg.InsightModel)
		logger.Info("Insight generation enabled", "model", cfg.InsightModel)
	} else {
		logger.Info("Insight generation disabled - no OPENAI_API_KEY provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, insighter, cfg.InsightTimeout)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 60 * time.Second // insight requests can be slow
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Service close error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting jeopsu server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
