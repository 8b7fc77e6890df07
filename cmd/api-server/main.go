package main

import (
	"log"
	"log/slog"
	"os"

	"yamdb/internal/app"
	"yamdb/internal/config"
	"yamdb/internal/logger"
)

// @title           YaMDb API
// @version         1.0
// @description     Reviews and ratings for films, books and music.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLog := logger.New(cfg, os.Stdout)
	slog.SetDefault(appLog)

	application, err := app.NewApp(cfg, appLog)
	if err != nil {
		appLog.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		appLog.Error("server error", "error", err)
		_ = application.Shutdown()
		os.Exit(1)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		os.Exit(1)
	}
}
