// Command server runs the joke web service.
//
// main stays minimal: load config, build the logger, hand both to
// internal/server. Everything else lives in imported packages.
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/jokebox/internal/config"
	"github.com/sakif/jokebox/internal/logger"
	"github.com/sakif/jokebox/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// no configured logger yet
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.SetupDefault(os.Stdout, cfg.App.SlogLevel(), cfg.App.LogFormat).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Environment),
	)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT or SIGTERM
	if err := srv.Start(); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
