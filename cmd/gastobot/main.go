package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"gastobot/internal/amqp"
	"gastobot/internal/backend"
	"gastobot/internal/cli"
	apphttp "gastobot/internal/http"
	"gastobot/internal/log"
	"gastobot/internal/ocr"
	"gastobot/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)

	logger.Info("Starting gastobot server")

	cfg := cli.LoadAndValidateConfig(logger)
	lex := cli.LoadLexicon(logger, cfg.LexiconPath)

	// Choose data backend (default: memory).
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateStore(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", log.FieldError, err, "backend", backendCfg.Type)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}
	}()
	logger.Info("Data backend initialized", "backend", backendCfg.Type.String())

	// Receipt OCR is optional; without an API key images are rejected.
	var recognizer ocr.Recognizer
	if cfg.GeminiAPIKey != "" {
		gem, err := ocr.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize OCR client", log.FieldError, err)
			os.Exit(1)
		}
		defer gem.Close()
		recognizer = gem
		logger.Info("OCR client initialized", "model", cfg.GeminiModel)
	} else {
		logger.Info("OCR disabled - no GEMINI_API_KEY provided")
	}

	// AMQP publishing is optional; without it records stay local only.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync", log.FieldError, err)
			amqpClient = nil
		} else {
			logger.Info("AMQP client initialized - records will sync via gastobot-worker")
		}
	} else {
		logger.Info("AMQP disabled - records will not sync to Google Sheets")
	}

	assistant := services.NewAssistant(lex, result.Store, recognizer, amqpClient, logger)
	defer assistant.Close()

	srv := apphttp.NewServer(apphttp.Options{
		Addr:              ":" + cfg.Port,
		RequestsPerMinute: cfg.RateLimitPerMinute,
	}, assistant, result.Store, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting HTTP server", "port", cfg.Port, "backend", backendCfg.Type.String())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
