package engine

import (
	"math"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// StepResult es el resultado de un único paso de simulación para una
// empresa: flujos del paso más el balance y estado resultantes. El paso
// es puro — el balance de entrada no se toca; el nuevo viene aquí.
type StepResult struct {
	MarketShare       float64
	DemandAssigned    float64
	Production        float64
	SalesUnits        float64
	EndInventoryUnits float64

	// CapexFulfilled es false si se pidió comprar máquinas y la compra se
	// descartó por caja insuficiente (todo o nada, sin compra parcial).
	CapexFulfilled bool

	PnL     domain.PnL
	Balance domain.Balance
	Status  domain.CompanyStatus
}

// stepSimulate aplica un paso (año completo o 1/12 de año) a todas las
// empresas. La asignación de mercado se calcula sobre el snapshot completo
// de decisiones antes de tocar ningún balance; después cada empresa se
// procesa de forma independiente.
//
// Las quebradas se saltan todo: flujos a cero, balance y estado intactos.
func (s *Simulator) stepSimulate(
	companies []domain.Company,
	decisions map[string]domain.Decisions,
	demandThisStep float64,
	fixedCostsThisStep float64,
	mode domain.PeriodMode,
) map[string]StepResult {
	shares := s.AllocateMarket(companies, decisions)

	out := make(map[string]StepResult, len(companies))
	for _, c := range companies {
		if !c.IsActive() {
			out[c.ID] = frozenStep(c, decisions[c.ID], s.cfg.TaxRate)
			continue
		}
		out[c.ID] = s.stepCompany(c, decisions[c.ID], shares[c.ID], demandThisStep, fixedCostsThisStep, mode)
	}
	return out
}

// stepCompany ejecuta el paso de una empresa activa en orden fijo:
// finanzas → capex → capacidad/producción → ventas → amortización e
// intereses prorrateados → P&L → balance → test de quiebra.
func (s *Simulator) stepCompany(
	c domain.Company,
	d domain.Decisions,
	share float64,
	demandThisStep float64,
	fixedCostsThisStep float64,
	mode domain.PeriodMode,
) StepResult {
	b := c.Balance

	// 1. Finanzas: disposición y amortización de deuda bajo el tope de
	// apalancamiento. Peticiones fuera de límite se recortan, nunca se
	// rechazan.
	interestAnnual := applyFinance(&b, d, s.cfg.MaxDebtMultipleOfEquity, s.cfg.InterestRateAnnual)

	// 2. Capex: compra todo-o-nada; sin caja suficiente se descarta entera.
	capexFulfilled := applyCapex(&b, d, s.cfg.MachineCost)

	// 3. Capacidad y producción
	b.Workers = d.EffectiveWorkers()
	capacityAnnual := math.Min(b.Machines*s.cfg.CapacityPerMachine, b.Workers*s.cfg.CapacityPerWorker)
	capacityStep := proRate(capacityAnnual, mode)
	production := math.Min(math.Max(0, d.ProductionTarget), capacityStep)

	// 4. Ventas
	available := b.InventoryUnits + production
	demandAssigned := share * demandThisStep
	salesUnits := math.Min(available, demandAssigned)
	revenue := salesUnits * d.EffectivePrice()

	// 5. Amortización e intereses, prorrateados al paso. La nómina NO se
	// prorratea aquí: el paso aplica el salario anual completo y la
	// agregación mensual lo corrige (ver SimulatePeriod).
	depreciation := proRate(b.Machines*s.cfg.MachineCost/s.cfg.MachineLifeYears, mode)
	interest := proRate(interestAnnual, mode)

	// 6. Cuenta de resultados
	pnl := domain.ComputePnL(domain.PnLInputs{
		Revenue:      revenue,
		SalesUnits:   salesUnits,
		UnitCost:     s.cfg.UnitMaterialCost + s.cfg.UnitVariableCost,
		Workers:      b.Workers,
		AnnualSalary: s.cfg.SalaryPerWorkerAnnual,
		Marketing:    d.EffectiveMarketing(),
		FixedCosts:   fixedCostsThisStep,
		Depreciation: depreciation,
		Interest:     interest,
		TaxRate:      s.cfg.TaxRate,
	})

	// 7. Balance: el beneficio es el único motor de caja y patrimonio tras
	// los flujos de finanzas y capex ya aplicados arriba.
	b.Cash += pnl.Profit
	b.Equity += pnl.Profit
	b.InventoryUnits = available - salesUnits
	b.FixedAssetsNet = math.Max(0, b.FixedAssetsNet-depreciation)

	// 8. Quiebra: irreversible
	status := c.Status
	if b.Cash < 0 || b.Equity <= 0 {
		status = domain.StatusBankrupt
	}

	return StepResult{
		MarketShare:       share,
		DemandAssigned:    demandAssigned,
		Production:        production,
		SalesUnits:        salesUnits,
		EndInventoryUnits: b.InventoryUnits,
		CapexFulfilled:    capexFulfilled,
		PnL:               pnl,
		Balance:           b,
		Status:            status,
	}
}

// applyFinance ejecuta disposición y amortización de deuda sobre el balance
// y devuelve el interés anualizado de la deuda resultante.
//
//	tope     = max(0, equity) × maxDebtMultiple
//	draw     = clamp(loanDraw, 0, tope − deuda)
//	repay    = clamp(loanRepay, 0, min(deuda + draw, caja + draw))
func applyFinance(b *domain.Balance, d domain.Decisions, maxDebtMultiple, interestRate float64) float64 {
	maxDebt := math.Max(0, b.Equity) * maxDebtMultiple
	allowedDraw := math.Max(0, maxDebt-b.Debt)
	draw := clamp(math.Max(0, d.LoanDraw), 0, allowedDraw)

	repay := clamp(math.Max(0, d.LoanRepay), 0, math.Min(b.Debt+draw, b.Cash+draw))

	b.Debt += draw - repay
	b.Cash += draw - repay

	return b.Debt * interestRate
}

// applyCapex compra las máquinas pedidas si la caja cubre el coste completo.
// Devuelve false solo cuando había compra pedida y se descartó.
func applyCapex(b *domain.Balance, d domain.Decisions, machineCost float64) bool {
	buy := d.EffectiveMachinesToBuy()
	if buy <= 0 {
		return true
	}

	cost := buy * machineCost
	if b.Cash < cost {
		return false
	}
	b.Cash -= cost
	b.Machines += buy
	b.FixedAssetsNet += cost // entra a coste; la amortización lo irá reduciendo
	return true
}

// frozenStep devuelve el resultado congelado de una empresa quebrada:
// flujos a cero, balance sin tocar, estado arrastrado.
func frozenStep(c domain.Company, d domain.Decisions, taxRate float64) StepResult {
	return StepResult{
		EndInventoryUnits: c.Balance.InventoryUnits,
		CapexFulfilled:    d.EffectiveMachinesToBuy() == 0,
		PnL:               domain.ComputePnL(domain.PnLInputs{TaxRate: taxRate}),
		Balance:           c.Balance,
		Status:            c.Status,
	}
}

// proRate reparte una cantidad anual al paso: entera en modo anual, /12 en
// modo mensual.
func proRate(annual float64, mode domain.PeriodMode) float64 {
	if mode == domain.ModeMonthly {
		return annual / 12
	}
	return annual
}

func clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(max, n))
}
