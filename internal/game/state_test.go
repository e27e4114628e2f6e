package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/simempresa/config"
	"github.com/alejandrodnm/simempresa/internal/domain"
	"github.com/alejandrodnm/simempresa/internal/engine"
	"github.com/alejandrodnm/simempresa/internal/ports"
)

// staticSource devuelve siempre las mismas decisiones.
type staticSource struct {
	d domain.Decisions
}

func (s staticSource) ProduceDecisions(context.Context, domain.Company, *domain.PeriodResult, float64) (domain.Decisions, error) {
	return s.d, nil
}

func testGame(t *testing.T) *Game {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Game.TotalPeriods = 2

	sim := engine.New(cfg.Engine, cfg.Game.MonthlyPeriods)

	d := DefaultPlayerDecisions()
	sources := map[string]ports.DecisionSource{
		PlayerID:        staticSource{d},
		CompetitorID(1): staticSource{d},
		CompetitorID(2): staticSource{d},
		CompetitorID(3): staticSource{d},
	}
	return New(cfg, sim, sources)
}

func TestGame_AdvanceAppendsHistory(t *testing.T) {
	g := testGame(t)
	require.Equal(t, 1, g.Period())

	results, err := g.Advance(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, 2, g.Period())
	for id, h := range g.History() {
		require.Len(t, h, 1, "history of %s", id)
		assert.Equal(t, 1, h[0].Period)
	}
}

func TestGame_FinishedAfterTotalPeriods(t *testing.T) {
	g := testGame(t)
	ctx := context.Background()

	for !g.Finished() {
		_, err := g.Advance(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, g.Period())

	_, err := g.Advance(ctx)
	assert.ErrorIs(t, err, ErrFinished)
}

func TestGame_ResetReinitializes(t *testing.T) {
	g := testGame(t)
	ctx := context.Background()

	_, err := g.Advance(ctx)
	require.NoError(t, err)

	g.Reset()

	assert.Equal(t, 1, g.Period())
	assert.Empty(t, g.History())
	for _, c := range g.Companies() {
		assert.Equal(t, domain.StatusActive, c.Status)
		assert.InDelta(t, 100000.0, c.Balance.Cash, 1e-9) // 350000 − 5×50000
	}
}

func TestGame_CompaniesReturnsCopy(t *testing.T) {
	g := testGame(t)

	companies := g.Companies()
	companies[0].Balance.Cash = -1

	assert.InDelta(t, 100000.0, g.Companies()[0].Balance.Cash, 1e-9)
}

func TestNewCompanies_InitialBalances(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	companies := NewCompanies(cfg.Game, cfg.Engine.MachineCost)
	require.Len(t, companies, 4)

	assert.Equal(t, PlayerID, companies[0].ID)
	assert.Equal(t, "Jugador", companies[0].Name)
	for _, c := range companies {
		assert.InDelta(t, 100000.0, c.Balance.Cash, 1e-9)
		assert.InDelta(t, 250000.0, c.Balance.FixedAssetsNet, 1e-9)
		assert.InDelta(t, 350000.0, c.Balance.Equity, 1e-9)
		assert.InDelta(t, 5.0, c.Balance.Machines, 1e-9)
		assert.InDelta(t, 10.0, c.Balance.Workers, 1e-9)
	}
}

func TestMarketAvgPrice_FromLastDecisions(t *testing.T) {
	companies := []domain.Company{
		{ID: "a", Status: domain.StatusActive},
		{ID: "b", Status: domain.StatusActive},
		{ID: "c", Status: domain.StatusBankrupt}, // excluida
	}
	last := map[string]domain.Decisions{
		"a": {Price: 20},
		"b": {Price: 40},
		"c": {Price: 1000},
	}

	assert.InDelta(t, 30.0, MarketAvgPrice(companies, last), 1e-9)
}

func TestMarketAvgPrice_FallbackWithoutDecisions(t *testing.T) {
	companies := []domain.Company{{ID: "a", Status: domain.StatusActive}}
	assert.Equal(t, 30.0, MarketAvgPrice(companies, nil))
}
