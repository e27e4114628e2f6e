package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/simempresa/config"
	"github.com/alejandrodnm/simempresa/internal/domain"
)

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		CapacityPerMachine:      1000,
		CapacityPerWorker:       300,
		MachineCost:             50000,
		MachineLifeYears:        10,
		UnitMaterialCost:        8,
		UnitVariableCost:        4,
		FixedCostsAnnual:        210000,
		SalaryPerWorkerAnnual:   30000,
		AnnualDemand:            18000,
		PriceSensitivity:        2,
		MarketingAlpha:          0.5,
		InterestRateAnnual:      0.06,
		TaxRate:                 0.25,
		MaxDebtMultipleOfEquity: 2,
		MonthlyDemandWeights: []float64{
			0.07, 0.075, 0.08, 0.085, 0.09, 0.095,
			0.095, 0.09, 0.085, 0.08, 0.075, 0.07,
		},
	}
}

func makeCompany(id string, status domain.CompanyStatus) domain.Company {
	return domain.Company{
		ID:     id,
		Name:   id,
		Status: status,
		Balance: domain.Balance{
			Cash:           100000,
			FixedAssetsNet: 250000,
			Equity:         350000,
			Machines:       5,
			Workers:        10,
		},
	}
}

func makeDecisions(price, marketing float64) domain.Decisions {
	return domain.Decisions{
		Price:            price,
		Marketing:        marketing,
		Workers:          10,
		ProductionTarget: 3000,
	}
}

func TestAllocateMarket_SharesSumToOne(t *testing.T) {
	s := New(testEngineConfig(), nil)
	companies := []domain.Company{
		makeCompany("a", domain.StatusActive),
		makeCompany("b", domain.StatusActive),
		makeCompany("c", domain.StatusActive),
	}
	decisions := map[string]domain.Decisions{
		"a": makeDecisions(25, 10000),
		"b": makeDecisions(30, 50000),
		"c": makeDecisions(42, 0),
	}

	shares := s.AllocateMarket(companies, decisions)

	var sum float64
	for _, sh := range shares {
		assert.GreaterOrEqual(t, sh, 0.0)
		sum += sh
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAllocateMarket_BankruptGetsZero(t *testing.T) {
	s := New(testEngineConfig(), nil)
	companies := []domain.Company{
		makeCompany("a", domain.StatusActive),
		makeCompany("b", domain.StatusBankrupt),
		makeCompany("c", domain.StatusActive),
	}
	decisions := map[string]domain.Decisions{
		"a": makeDecisions(30, 10000),
		"b": makeDecisions(1, 999999), // irrelevante: está quebrada
		"c": makeDecisions(30, 10000),
	}

	shares := s.AllocateMarket(companies, decisions)

	assert.Equal(t, 0.0, shares["b"])
	assert.InDelta(t, 1.0, shares["a"]+shares["c"], 1e-9)
}

func TestAllocateMarket_NoActiveCompanies(t *testing.T) {
	s := New(testEngineConfig(), nil)
	companies := []domain.Company{
		makeCompany("a", domain.StatusBankrupt),
		makeCompany("b", domain.StatusBankrupt),
	}
	decisions := map[string]domain.Decisions{
		"a": makeDecisions(30, 0),
		"b": makeDecisions(30, 0),
	}

	shares := s.AllocateMarket(companies, decisions)

	assert.Equal(t, 0.0, shares["a"])
	assert.Equal(t, 0.0, shares["b"])
}

func TestAllocateMarket_SymmetricFirmsSplitEvenly(t *testing.T) {
	s := New(testEngineConfig(), nil)
	companies := []domain.Company{
		makeCompany("a", domain.StatusActive),
		makeCompany("b", domain.StatusActive),
		makeCompany("c", domain.StatusActive),
		makeCompany("d", domain.StatusActive),
	}
	decisions := map[string]domain.Decisions{}
	for _, c := range companies {
		decisions[c.ID] = makeDecisions(30, 35000)
	}

	shares := s.AllocateMarket(companies, decisions)

	for _, c := range companies {
		assert.InDelta(t, 0.25, shares[c.ID], 1e-9)
	}
}

func TestAllocateMarket_LowerPriceIncreasesShare(t *testing.T) {
	s := New(testEngineConfig(), nil)
	companies := []domain.Company{
		makeCompany("a", domain.StatusActive),
		makeCompany("b", domain.StatusActive),
		makeCompany("c", domain.StatusActive),
		makeCompany("d", domain.StatusActive),
	}
	base := map[string]domain.Decisions{}
	for _, c := range companies {
		base[c.ID] = makeDecisions(30, 35000)
	}
	baseline := s.AllocateMarket(companies, base)

	// a baja a 25, mediana de [25,30,30,30] = 30: su término de precio
	// pasa a exp(-2×(25/30−1)) > 1 con el resto en exp(0) = 1.
	cheaper := map[string]domain.Decisions{}
	for id, d := range base {
		cheaper[id] = d
	}
	cheaper["a"] = makeDecisions(25, 35000)

	shares := s.AllocateMarket(companies, cheaper)

	assert.Greater(t, shares["a"], baseline["a"])
	assert.Greater(t, shares["a"], shares["b"])
}

func TestAllocateMarket_MoreMarketingNeverReducesShare(t *testing.T) {
	s := New(testEngineConfig(), nil)
	companies := []domain.Company{
		makeCompany("a", domain.StatusActive),
		makeCompany("b", domain.StatusActive),
	}
	low := map[string]domain.Decisions{
		"a": makeDecisions(30, 10000),
		"b": makeDecisions(30, 10000),
	}
	high := map[string]domain.Decisions{
		"a": makeDecisions(30, 90000),
		"b": makeDecisions(30, 10000),
	}

	before := s.AllocateMarket(companies, low)
	after := s.AllocateMarket(companies, high)

	assert.GreaterOrEqual(t, after["a"], before["a"])
}

func TestAllocateMarket_NegativeInputsClamped(t *testing.T) {
	s := New(testEngineConfig(), nil)
	companies := []domain.Company{
		makeCompany("a", domain.StatusActive),
		makeCompany("b", domain.StatusActive),
	}
	decisions := map[string]domain.Decisions{
		"a": makeDecisions(-5, -1000), // precio al suelo 0.01, marketing a 0
		"b": makeDecisions(30, 0),
	}

	shares := s.AllocateMarket(companies, decisions)

	require.InDelta(t, 1.0, shares["a"]+shares["b"], 1e-9)
	// Con precio efectivo 0.01 muy por debajo de la referencia, a domina.
	assert.Greater(t, shares["a"], shares["b"])
}

func TestMedian_OddCount(t *testing.T) {
	assert.Equal(t, 30.0, median([]float64{42, 30, 25}))
}

func TestMedian_EvenCountAveragesMiddleValues(t *testing.T) {
	// [10,20,30,40] → (20+30)/2 = 25
	assert.Equal(t, 25.0, median([]float64{40, 10, 30, 20}))
}

func TestMedian_Empty(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
}
