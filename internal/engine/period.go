package engine

import (
	"github.com/alejandrodnm/simempresa/internal/domain"
)

// SimulatePeriod ejecuta un periodo completo y devuelve el resultado por
// empresa junto con las empresas en su estado final. No muta las empresas
// recibidas: el caller decide qué hacer con el estado devuelto.
//
// El modo lo decide el número de periodo: mensual si está en el conjunto
// configurado, anual en caso contrario. Ejecutar dos veces con el mismo
// estado y decisiones produce resultados idénticos — no hay aleatoriedad.
func (s *Simulator) SimulatePeriod(
	companies []domain.Company,
	decisions map[string]domain.Decisions,
	period int,
) (map[string]domain.PeriodResult, []domain.Company) {
	companies = domain.CloneCompanies(companies)

	if s.monthlyPeriods[period] {
		return s.simulateMonthly(companies, decisions, period)
	}
	return s.simulateAnnual(companies, decisions, period)
}

// simulateAnnual: un único paso con la demanda y costes fijos anuales
// completos; el resultado del paso mapea directo a PeriodResult.
func (s *Simulator) simulateAnnual(
	companies []domain.Company,
	decisions map[string]domain.Decisions,
	period int,
) (map[string]domain.PeriodResult, []domain.Company) {
	step := s.stepSimulate(companies, decisions, s.cfg.AnnualDemand, s.cfg.FixedCostsAnnual, domain.ModeAnnual)
	companies = applyStep(companies, step)

	results := make(map[string]domain.PeriodResult, len(companies))
	for id, r := range step {
		results[id] = domain.PeriodResult{
			Period:            period,
			Mode:              domain.ModeAnnual,
			MarketShare:       r.MarketShare,
			DemandAssigned:    r.DemandAssigned,
			Production:        r.Production,
			SalesUnits:        r.SalesUnits,
			EndInventoryUnits: r.EndInventoryUnits,
			CapexFulfilled:    r.CapexFulfilled,
			PnL:               r.PnL,
			CashEnd:           r.Balance.Cash,
			EquityEnd:         r.Balance.Equity,
			DebtEnd:           r.Balance.Debt,
			MachinesEnd:       r.Balance.Machines,
			WorkersEnd:        r.Balance.Workers,
			StatusEnd:         r.Status,
		}
	}
	return results, companies
}

// simulateMonthly: doce pasos con las MISMAS decisiones, demanda mensual
// según la curva normalizada y costes fijos anuales repartidos a partes
// iguales. El estado se arrastra mes a mes, quiebras intermedias incluidas.
//
// Agregación por empresa:
//   - cuota: media ponderada por los mismos pesos de demanda
//   - demanda, producción, ventas y cada línea del P&L: suma
//   - nómina: suma de cada mes dividido entre 12 — el paso aplica el
//     salario anual completo, así que la suma ingenua inflaría la nómina
//     anual doce veces; la corrección mantiene la paridad con el modo
//     anual para la misma plantilla. Un diseño más limpio prorratearía la
//     nómina por duración dentro del paso, como amortización e intereses,
//     pero cambiaría las cifras documentadas del modelo.
//   - balances y estado finales: los del mes 12
func (s *Simulator) simulateMonthly(
	companies []domain.Company,
	decisions map[string]domain.Decisions,
	period int,
) (map[string]domain.PeriodResult, []domain.Company) {
	acc := make(map[string]*domain.PeriodResult, len(companies))
	for _, c := range companies {
		acc[c.ID] = &domain.PeriodResult{
			Period:         period,
			Mode:           domain.ModeMonthly,
			CapexFulfilled: true,
		}
	}

	for m := 0; m < 12; m++ {
		demandThisMonth := s.cfg.AnnualDemand * s.monthlyWeights[m]
		fixedThisMonth := s.cfg.FixedCostsAnnual / 12

		step := s.stepSimulate(companies, decisions, demandThisMonth, fixedThisMonth, domain.ModeMonthly)
		companies = applyStep(companies, step)

		for id, r := range step {
			a := acc[id]
			a.MarketShare += r.MarketShare * s.monthlyWeights[m]
			a.DemandAssigned += r.DemandAssigned
			a.Production += r.Production
			a.SalesUnits += r.SalesUnits
			a.CapexFulfilled = a.CapexFulfilled && r.CapexFulfilled

			a.PnL.Revenue += r.PnL.Revenue
			a.PnL.COGS += r.PnL.COGS
			a.PnL.Payroll += r.PnL.Payroll / 12
			a.PnL.Marketing += r.PnL.Marketing
			a.PnL.FixedCosts += r.PnL.FixedCosts
			a.PnL.EBITDA += r.PnL.EBITDA
			a.PnL.Depreciation += r.PnL.Depreciation
			a.PnL.EBIT += r.PnL.EBIT
			a.PnL.Interest += r.PnL.Interest
			a.PnL.Taxes += r.PnL.Taxes
			a.PnL.Profit += r.PnL.Profit
		}
	}

	results := make(map[string]domain.PeriodResult, len(companies))
	for _, c := range companies {
		a := acc[c.ID]
		a.EndInventoryUnits = c.Balance.InventoryUnits
		a.CashEnd = c.Balance.Cash
		a.EquityEnd = c.Balance.Equity
		a.DebtEnd = c.Balance.Debt
		a.MachinesEnd = c.Balance.Machines
		a.WorkersEnd = c.Balance.Workers
		a.StatusEnd = c.Status
		results[c.ID] = *a
	}
	return results, companies
}

// applyStep vuelca el balance y estado resultantes de un paso sobre una
// copia de las empresas, manteniendo puro el paso anterior.
func applyStep(companies []domain.Company, step map[string]StepResult) []domain.Company {
	out := domain.CloneCompanies(companies)
	for i := range out {
		if r, ok := step[out[i].ID]; ok {
			out[i].Balance = r.Balance
			out[i].Status = r.Status
		}
	}
	return out
}
