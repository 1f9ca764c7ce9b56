package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cozycash/internal/config"
	"cozycash/pkg/log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	envErr := godotenv.Load()

	logger := log.NewLogger()
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Fatalf("Error loading .env file: %v", envErr)
	} else if envErr != nil {
		logger.Warn("No .env file found, reading configuration from the environment")
	}

	appConfig, err := config.LoadAppConfig()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	decimal.MarshalJSONWithoutQuotes = true

	fiberApp := config.NewFiber(logger, appConfig.CORSOrigins)
	validator := config.NewValidator()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithAPIPrefix(appConfig.APIPrefix),
		config.WithWarningThreshold(appConfig.WarningThreshold),
		config.WithDatabase(appConfig.Database),
		config.WithRedisServer(appConfig.Redis),
		config.WithTokenService(appConfig.JWT),
		config.WithBcryptUtils(nil),
		config.WithMiddleware(appConfig.RateLimit),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(appConfig.Port); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
