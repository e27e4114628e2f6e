package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/alejandrodnm/simempresa/config"
	"github.com/alejandrodnm/simempresa/internal/adapters/decision"
	"github.com/alejandrodnm/simempresa/internal/adapters/notify"
	"github.com/alejandrodnm/simempresa/internal/adapters/storage"
	"github.com/alejandrodnm/simempresa/internal/engine"
	"github.com/alejandrodnm/simempresa/internal/game"
	"github.com/alejandrodnm/simempresa/internal/ports"
)

func main() {
	configPath := flag.String("config", "", "path to config file (vacío: partida canónica)")
	auto := flag.Bool("auto", false, "jugar sin formulario: el jugador usa las decisiones por defecto")
	detail := flag.Bool("detail", false, "imprimir P&L y balance completos por periodo")
	noSave := flag.Bool("no-save", false, "no persistir el registro de la sesión")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("simempresa starting",
		"config", *configPath,
		"periods", cfg.Game.TotalPeriods,
		"monthly_periods", cfg.Game.MonthlyPeriods,
		"auto", *auto,
	)

	var store *storage.SQLiteStore
	if !*noSave {
		store, err = storage.NewSQLiteStore(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	notifier := notify.NewConsole(*detail)
	sim := engine.New(cfg.Engine, cfg.Game.MonthlyPeriods)

	sources := make(map[string]ports.DecisionSource)
	if *auto {
		sources[game.PlayerID] = decision.NewStatic(game.DefaultPlayerDecisions())
	} else {
		sources[game.PlayerID] = decision.NewPlayer(os.Stdin, os.Stdout, game.DefaultPlayerDecisions())
	}
	for i := range cfg.Game.CompetitorNames {
		sources[game.CompetitorID(i+1)] = decision.NewScripted(
			decision.ProfileForCompetitor(i+1),
			cfg.Engine.CapacityPerMachine,
			cfg.Engine.CapacityPerWorker,
		)
	}

	g := game.New(cfg, sim, sources)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessionID := uuid.New().String()
	if store != nil {
		if err := store.BeginSession(ctx, sessionID, cfg.Game.PlayerName); err != nil {
			slog.Error("failed to begin session", "err", err)
			os.Exit(1)
		}
	}

	if err := runGame(ctx, g, store, notifier, sessionID, cfg, *auto); err != nil {
		slog.Error("game exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("simempresa stopped cleanly", "session", sessionID)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
