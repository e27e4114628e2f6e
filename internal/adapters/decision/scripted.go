// Package decision contiene los orígenes de decisiones: el formulario
// interactivo del jugador y la heurística de los competidores.
package decision

import (
	"context"
	"math"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// Profile es el perfil de comportamiento de un competidor.
type Profile string

const (
	ProfileBalanced     Profile = "balanced"
	ProfileAggressive   Profile = "aggressive"
	ProfileConservative Profile = "conservative"
)

// ProfileForCompetitor asigna perfil por índice de competidor (desde 1):
// el primero equilibrado, el segundo agresivo, el resto conservadores.
func ProfileForCompetitor(i int) Profile {
	switch i {
	case 1:
		return ProfileBalanced
	case 2:
		return ProfileAggressive
	default:
		return ProfileConservative
	}
}

// Scripted implementa ports.DecisionSource con la heurística de los
// competidores. Es determinista: mismas entradas, mismas decisiones.
type Scripted struct {
	profile Profile

	// Constantes de planta que la heurística usa para dimensionar
	// producción y plantilla.
	capacityPerMachine float64
	capacityPerWorker  float64
}

// NewScripted crea el competidor con el perfil dado.
func NewScripted(profile Profile, capacityPerMachine, capacityPerWorker float64) *Scripted {
	return &Scripted{
		profile:            profile,
		capacityPerMachine: capacityPerMachine,
		capacityPerWorker:  capacityPerWorker,
	}
}

// ProduceDecisions genera las decisiones del periodo.
//
// La heurística ancla el precio a la media estimada del mercado con un
// multiplicador por perfil, dedica una fracción de la caja a marketing con
// tope, y dimensiona producción y plantilla a una utilización objetivo del
// parque de máquinas. Adaptación simple sobre el último resultado: con
// pérdidas protege caja (sube precio, recorta marketing y utilización);
// con cuota baja empuja el marketing.
func (s *Scripted) ProduceDecisions(_ context.Context, company domain.Company, last *domain.PeriodResult, marketAvgPrice float64) (domain.Decisions, error) {
	b := company.Balance

	basePrice := marketAvgPrice
	if basePrice <= 0 {
		basePrice = 30
	}

	price := basePrice
	marketingFrac := 0.06
	targetUtil := 0.85

	switch s.profile {
	case ProfileAggressive:
		price = basePrice * 0.92
		marketingFrac = 0.10
		targetUtil = 0.95
	case ProfileConservative:
		price = basePrice * 1.08
		marketingFrac = 0.045
		targetUtil = 0.75
	}

	if last != nil {
		if last.PnL.Profit < 0 {
			price *= 1.03
			marketingFrac *= 0.85
			targetUtil *= 0.9
		}
		if last.MarketShare < 0.22 {
			marketingFrac *= 1.10
		}
	}

	marketing := math.Floor(clamp(b.Cash*marketingFrac, 0, 120000))

	maxByMachines := b.Machines * s.capacityPerMachine
	desiredProduction := math.Floor(maxByMachines * targetUtil)
	workers := math.Max(0, math.Ceil(desiredProduction/s.capacityPerWorker))

	var machinesToBuy float64
	if b.Cash > 450000 && targetUtil > 0.9 {
		machinesToBuy = 1
	}

	var loanDraw float64
	if b.Cash < 80000 && b.Equity > 150000 {
		loanDraw = 50000
	}
	var loanRepay float64
	if b.Cash > 250000 && b.Debt > 0 {
		loanRepay = math.Min(50000, b.Debt)
	}

	return domain.Decisions{
		Price:            math.Round(price),
		Marketing:        marketing,
		Workers:          workers,
		ProductionTarget: desiredProduction,
		MachinesToBuy:    machinesToBuy,
		LoanDraw:         loanDraw,
		LoanRepay:        loanRepay,
	}, nil
}

func clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(max, n))
}
