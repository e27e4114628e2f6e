package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// richCompany sobrevive los doce meses de un periodo mensual sin quebrar.
func richCompany(id string) domain.Company {
	c := makeCompany(id, domain.StatusActive)
	c.Balance.Cash = 10000000
	c.Balance.Equity = 10000000
	return c
}

func TestSimulatePeriod_AnnualSymmetricScenario(t *testing.T) {
	// Cuatro empresas idénticas con decisiones idénticas: cuota exacta de
	// 0.25 y resultados indistinguibles entre sí.
	//
	// Con los parámetros canónicos: capacidad = min(5×1000, 10×300) = 3000,
	// ventas = min(3000, 0.25×18000) = 3000, ingresos = 3000×30 = 90000,
	// cogs = 3000×12 = 36000, nóminas = 300000, beneficio =
	// 90000−36000−300000−35000−210000−25000 = −516000.
	s := New(testEngineConfig(), []int{5, 6})

	ids := []string{"player", "ai1", "ai2", "ai3"}
	var companies []domain.Company
	decisions := map[string]domain.Decisions{}
	for _, id := range ids {
		companies = append(companies, makeCompany(id, domain.StatusActive))
		decisions[id] = domain.Decisions{
			Price:            30,
			Marketing:        35000,
			Workers:          10,
			ProductionTarget: 5000,
		}
	}

	results, updated := s.SimulatePeriod(companies, decisions, 1)
	require.Len(t, results, 4)

	for _, id := range ids {
		r := results[id]
		assert.Equal(t, domain.ModeAnnual, r.Mode)
		assert.InDelta(t, 0.25, r.MarketShare, 1e-9)
		assert.InDelta(t, 3000.0, r.Production, 1e-9)
		assert.InDelta(t, 3000.0, r.SalesUnits, 1e-9)
		assert.InDelta(t, -516000.0, r.PnL.Profit, 1e-6)
	}

	// Resultados idénticos entre las cuatro salvo el id implícito en la clave.
	assert.Equal(t, results["player"], results["ai1"])
	assert.Equal(t, results["ai1"], results["ai2"])
	assert.Equal(t, results["ai2"], results["ai3"])

	// El estado devuelto refleja el cierre; las empresas de entrada no se tocan.
	assert.InDelta(t, 100000.0, companies[0].Balance.Cash, 1e-9)
	assert.InDelta(t, -416000.0, updated[0].Balance.Cash, 1e-6)
}

func TestSimulatePeriod_Deterministic(t *testing.T) {
	s := New(testEngineConfig(), []int{5, 6})

	companies := []domain.Company{richCompany("a"), richCompany("b")}
	decisions := map[string]domain.Decisions{
		"a": {Price: 28, Marketing: 20000, Workers: 10, ProductionTarget: 3000},
		"b": {Price: 33, Marketing: 60000, Workers: 12, ProductionTarget: 3500},
	}

	r1, u1 := s.SimulatePeriod(companies, decisions, 5)
	r2, u2 := s.SimulatePeriod(companies, decisions, 5)

	assert.Equal(t, r1, r2)
	assert.Equal(t, u1, u2)
}

func TestSimulatePeriod_MonthlyPayrollMatchesAnnual(t *testing.T) {
	// Con plantilla constante de 10, la nómina agregada del modo mensual
	// debe igualar la anual: 10 × 30000 = 300000. Cada mes computa la
	// nómina anual completa y la agregación la divide entre 12.
	s := New(testEngineConfig(), []int{5})

	decisions := map[string]domain.Decisions{
		"a": {Price: 30, Marketing: 10000, Workers: 10, ProductionTarget: 3000},
	}

	annual, _ := s.SimulatePeriod([]domain.Company{richCompany("a")}, decisions, 1)
	monthly, _ := s.SimulatePeriod([]domain.Company{richCompany("a")}, decisions, 5)

	assert.Equal(t, domain.ModeMonthly, monthly["a"].Mode)
	assert.InDelta(t, 300000.0, annual["a"].PnL.Payroll, 1e-6)
	assert.InDelta(t, 300000.0, monthly["a"].PnL.Payroll, 1e-6)
}

func TestSimulatePeriod_MonthlyShareIsWeightedAverage(t *testing.T) {
	// Dos empresas simétricas: cuota 0.5 todos los meses, y la media
	// ponderada por los pesos (que suman 1) también es 0.5.
	s := New(testEngineConfig(), []int{5})

	companies := []domain.Company{richCompany("a"), richCompany("b")}
	d := domain.Decisions{Price: 30, Marketing: 10000, Workers: 10, ProductionTarget: 3000}
	decisions := map[string]domain.Decisions{"a": d, "b": d}

	results, _ := s.SimulatePeriod(companies, decisions, 5)

	assert.InDelta(t, 0.5, results["a"].MarketShare, 1e-9)
	assert.InDelta(t, 0.5, results["b"].MarketShare, 1e-9)
}

func TestSimulatePeriod_MonthlyDemandFollowsCurve(t *testing.T) {
	// La demanda total asignada en modo mensual con una sola empresa es la
	// anual completa: los pesos normalizados suman 1.
	s := New(testEngineConfig(), []int{5})

	decisions := map[string]domain.Decisions{
		"a": {Price: 30, Marketing: 10000, Workers: 10, ProductionTarget: 3000},
	}

	results, _ := s.SimulatePeriod([]domain.Company{richCompany("a")}, decisions, 5)

	assert.InDelta(t, 18000.0, results["a"].DemandAssigned, 1e-6)
}

func TestSimulatePeriod_MidPeriodBankruptcyCarries(t *testing.T) {
	// Caja justa: quiebra en algún mes intermedio y queda congelada el
	// resto del periodo; el resultado agregado la reporta quebrada.
	s := New(testEngineConfig(), []int{5})

	c := makeCompany("a", domain.StatusActive)
	c.Balance.Cash = 60000
	c.Balance.Equity = 80000

	decisions := map[string]domain.Decisions{
		"a": {Price: 30, Marketing: 50000, Workers: 10, ProductionTarget: 0},
	}

	results, updated := s.SimulatePeriod([]domain.Company{c}, decisions, 5)

	assert.Equal(t, domain.StatusBankrupt, results["a"].StatusEnd)
	assert.Equal(t, domain.StatusBankrupt, updated[0].Status)
	// El balance final coincide con el reportado en el resultado.
	assert.Equal(t, updated[0].Balance.Cash, results["a"].CashEnd)
}

func TestSimulatePeriod_ModeSelectionByPeriodNumber(t *testing.T) {
	s := New(testEngineConfig(), []int{5, 6})

	decisions := map[string]domain.Decisions{
		"a": {Price: 30, Workers: 10, ProductionTarget: 3000},
	}

	for period, want := range map[int]domain.PeriodMode{
		1: domain.ModeAnnual,
		4: domain.ModeAnnual,
		5: domain.ModeMonthly,
		6: domain.ModeMonthly,
	} {
		results, _ := s.SimulatePeriod([]domain.Company{richCompany("a")}, decisions, period)
		assert.Equal(t, want, results["a"].Mode, "period %d", period)
	}
}

func TestNormalizeWeights(t *testing.T) {
	w := normalizeWeights([]float64{1, 1, 2})
	assert.InDelta(t, 0.25, w[0], 1e-9)
	assert.InDelta(t, 0.25, w[1], 1e-9)
	assert.InDelta(t, 0.5, w[2], 1e-9)

	// Suma 0 se trata como 1: los pesos quedan en 0 sin dividir por cero.
	z := normalizeWeights([]float64{0, 0})
	assert.Equal(t, []float64{0, 0}, z)
}
