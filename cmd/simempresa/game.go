package main

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/simempresa/config"
	"github.com/alejandrodnm/simempresa/internal/adapters/notify"
	"github.com/alejandrodnm/simempresa/internal/adapters/storage"
	"github.com/alejandrodnm/simempresa/internal/game"
)

// runGame ejecuta la partida hasta el último periodo o hasta que el
// contexto se cancele. En modo auto el limiter marca el ritmo entre
// periodos; en modo interactivo el ritmo lo pone el formulario.
func runGame(
	ctx context.Context,
	g *game.Game,
	store *storage.SQLiteStore,
	notifier *notify.Console,
	sessionID string,
	cfg *config.Config,
	auto bool,
) error {
	limiter := rate.NewLimiter(rate.Every(cfg.AutoInterval()), 1)

	for !g.Finished() {
		if auto {
			if err := limiter.Wait(ctx); err != nil {
				printExitSummary(ctx, store, notifier, sessionID)
				return nil // cancelación limpia
			}
		}
		if err := ctx.Err(); err != nil {
			printExitSummary(ctx, store, notifier, sessionID)
			return nil
		}

		slog.Debug("simulando periodo", "period", g.Period())

		results, err := g.Advance(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				printExitSummary(context.Background(), store, notifier, sessionID)
				return nil
			}
			return err
		}

		if err := notifier.PublishPeriod(ctx, g.Companies(), results); err != nil {
			slog.Warn("notifier error", "err", err)
		}

		if store != nil {
			if err := store.SaveResults(ctx, sessionID, g.Companies(), results); err != nil {
				slog.Warn("could not persist period results", "err", err)
			}
		}
	}

	if err := notifier.PublishFinal(ctx, g.Companies(), g.History()); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	printExitSummary(ctx, store, notifier, sessionID)
	return nil
}

// printExitSummary imprime el resumen agregado de la sesión persistida.
func printExitSummary(ctx context.Context, store *storage.SQLiteStore, notifier *notify.Console, sessionID string) {
	if store == nil {
		return
	}
	sum, err := store.SessionSummary(ctx, sessionID)
	if err != nil {
		slog.Warn("could not generate exit summary", "err", err)
		return
	}
	if sum.Periods == 0 {
		return
	}
	notifier.PrintSummary(sum)
}
