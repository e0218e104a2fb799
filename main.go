package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"

	"speech-upload-app/internal/bootstrap"
	"speech-upload-app/internal/config"
	"speech-upload-app/internal/interface/http/handler"
	"speech-upload-app/internal/logging"
)

func main() {
	logger := logging.New(os.Getenv("LOG_LEVEL"), nil)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	logger = logging.New(cfg.LogLevel, nil)

	uc, err := bootstrap.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire pipeline", "err", err)
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.RegisterHealthRoutes(app)
	handler.NewSpeechHandler(uc, cfg, logger).Register(app)

	logger.Info("server listening", "addr", cfg.ServerAddr, "synth", cfg.SynthBackend, "storage", cfg.StorageBackend)
	if err := app.Listen(cfg.ServerAddr); err != nil {
		logger.Fatal("failed to start server", "err", err)
	}
}
