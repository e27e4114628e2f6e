// Package game implementa el bucle de juego: estado de la partida, avance
// periodo a periodo invocando al motor, e histórico de resultados.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/simempresa/config"
	"github.com/alejandrodnm/simempresa/internal/domain"
	"github.com/alejandrodnm/simempresa/internal/engine"
	"github.com/alejandrodnm/simempresa/internal/ports"
)

// ErrFinished se devuelve al intentar avanzar una partida ya terminada.
var ErrFinished = errors.New("game: la partida ha terminado")

// Game mantiene el estado de una partida: contador de periodo, empresas,
// últimas decisiones e histórico append-only de resultados por empresa.
//
// Cada periodo se ejecuta como una computación atómica: se recogen las
// decisiones de todas las empresas, el motor corre hasta completarse y
// solo entonces se publica el nuevo estado. No hay visibilidad parcial
// ni cancelación de un periodo empezado.
type Game struct {
	cfg     *config.Config
	sim     *engine.Simulator
	sources map[string]ports.DecisionSource

	period        int
	companies     []domain.Company
	lastDecisions map[string]domain.Decisions
	history       map[string][]domain.PeriodResult
}

// New crea una partida en el periodo 1 con las empresas iniciales.
// sources mapea id de empresa → origen de decisiones; toda empresa debe
// tener el suyo.
func New(cfg *config.Config, sim *engine.Simulator, sources map[string]ports.DecisionSource) *Game {
	g := &Game{cfg: cfg, sim: sim, sources: sources}
	g.Reset()
	return g
}

// Reset descarta el estado y reinicializa la partida desde el periodo 1.
func (g *Game) Reset() {
	g.period = 1
	g.companies = NewCompanies(g.cfg.Game, g.cfg.Engine.MachineCost)
	g.lastDecisions = make(map[string]domain.Decisions)
	g.history = make(map[string][]domain.PeriodResult)
}

// Advance ejecuta el periodo actual: recoge decisiones de cada origen,
// simula, publica el nuevo estado y avanza el contador. Devuelve los
// resultados del periodo cerrado.
func (g *Game) Advance(ctx context.Context) (map[string]domain.PeriodResult, error) {
	if g.Finished() {
		return nil, ErrFinished
	}

	avgPrice := MarketAvgPrice(g.companies, g.lastDecisions)

	decisions := make(map[string]domain.Decisions, len(g.companies))
	for _, c := range g.companies {
		src, ok := g.sources[c.ID]
		if !ok {
			return nil, fmt.Errorf("game.Advance: empresa %s sin origen de decisiones", c.ID)
		}

		var last *domain.PeriodResult
		if h := g.history[c.ID]; len(h) > 0 {
			prev := h[len(h)-1]
			last = &prev
		}

		d, err := src.ProduceDecisions(ctx, c.Clone(), last, avgPrice)
		if err != nil {
			return nil, fmt.Errorf("game.Advance: decisiones de %s: %w", c.ID, err)
		}
		decisions[c.ID] = d
	}

	results, updated := g.sim.SimulatePeriod(g.companies, decisions, g.period)

	g.companies = updated
	g.lastDecisions = decisions
	for id, r := range results {
		g.history[id] = append(g.history[id], r)
	}

	slog.Info("periodo cerrado",
		"period", g.period,
		"mode", results[g.companies[0].ID].Mode,
		"bankruptcies", g.bankruptcies(),
	)

	g.period++
	return results, nil
}

// Finished devuelve true cuando se han jugado todos los periodos.
func (g *Game) Finished() bool {
	return g.period > g.cfg.Game.TotalPeriods
}

// Period devuelve el número del periodo pendiente de jugar.
func (g *Game) Period() int {
	return g.period
}

// Companies devuelve una copia del estado actual de las empresas, en el
// orden fijo de la partida.
func (g *Game) Companies() []domain.Company {
	return domain.CloneCompanies(g.companies)
}

// History devuelve una copia del histórico de resultados por empresa.
func (g *Game) History() map[string][]domain.PeriodResult {
	out := make(map[string][]domain.PeriodResult, len(g.history))
	for id, rs := range g.history {
		cp := make([]domain.PeriodResult, len(rs))
		copy(cp, rs)
		out[id] = cp
	}
	return out
}

// bankruptcies cuenta las empresas quebradas en el estado actual.
func (g *Game) bankruptcies() int {
	var n int
	for _, c := range g.companies {
		if !c.IsActive() {
			n++
		}
	}
	return n
}
