package main

import (
	"context"
	"os"
	"time"

	"gastobot/internal/backend"
	"gastobot/internal/cli"
	"gastobot/internal/log"
	"gastobot/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentFixed)

	logger.Info("Starting fixed-worker")

	cfg := cli.LoadAndValidateConfig(logger)

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

	processor := services.NewFixedProcessor(result.Store, logger)

	logger.Info("Fixed entry processor configured",
		"interval", cfg.FixedInterval,
		"backend", backendCfg.Type.String())

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	ticker := time.NewTicker(cfg.FixedInterval)
	defer ticker.Stop()

	// Run initial processing on startup so overdue entries are not delayed
	// by a full interval.
	if count, err := processor.ProcessDue(ctx, time.Now()); err != nil {
		logger.Error("Initial processing failed", log.FieldError, err)
	} else {
		logger.Info("Initial processing complete", "records_created", count)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				count, err := processor.ProcessDue(ctx, now)
				if err != nil {
					logger.Error("Periodic processing failed", log.FieldError, err)
					continue
				}
				logger.Info("Periodic processing complete",
					"records_created", count,
					"next_check", now.Add(cfg.FixedInterval).Format("15:04:05"))
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Fixed-worker stopped gracefully")
}
