package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/flappykiro/leaderboard-service/internal/config"
	"github.com/flappykiro/leaderboard-service/internal/eventlog"
	"github.com/flappykiro/leaderboard-service/internal/httpserver"
	"github.com/flappykiro/leaderboard-service/internal/leaderboard"
	"github.com/flappykiro/leaderboard-service/internal/models"
	"github.com/flappykiro/leaderboard-service/internal/service"
	"github.com/flappykiro/leaderboard-service/internal/store"
	"github.com/flappykiro/leaderboard-service/internal/tracing"
)

// main boots the service: logging → config → tracing → stores → HTTP server.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	shutdown, err := tracing.Setup(ctx, httpserver.ServiceName)
	if err != nil {
		slog.Warn("tracing disabled", slog.String("error", err.Error()))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Warn("tracing shutdown", slog.String("error", err.Error()))
			}
		}()
	}

	scoresFile, err := store.NewJSONFile[models.ScoreEntry](cfg.ScoresFile())
	if err != nil {
		slog.Error("failed to open scores store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	telemetryFile, err := store.NewJSONFile[models.TelemetryEvent](cfg.TelemetryFile())
	if err != nil {
		slog.Error("failed to open telemetry store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Both collections load once here and live for the process lifetime;
	// corrupt state is discarded by the store rather than blocking startup.
	ledger := leaderboard.New(scoresFile, leaderboard.DefaultCapacity)
	events := eventlog.New(telemetryFile, eventlog.DefaultCapacity)

	svc := service.New(ledger, events)
	router := httpserver.NewRouter(cfg, svc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("server started", slog.String("addr", addr), slog.String("data_dir", cfg.DataDir))
	if err := router.Run(addr); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
