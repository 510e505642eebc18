package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	httpapi "teleconsult/internal/api/http"
	"teleconsult/internal/config"
	"teleconsult/internal/repository"
	"teleconsult/internal/service"
	"teleconsult/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	registry := repository.NewInMemoryRoomRegistry()
	coordinator := service.NewCoordinator(registry, log, cfg.Session.EventBuffer)

	consultController := httpapi.NewConsultController(coordinator, log)
	roomController := httpapi.NewRoomController(coordinator)
	uploadController := httpapi.NewUploadController(cfg.Upload.Dir, cfg.Upload.MaxSizeMB, log)

	router := httpapi.SetupRouter(cfg, consultController, roomController, uploadController)

	log.Info("starting relay", slog.String("addr", cfg.HTTP.Address), slog.String("env", cfg.Env))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
