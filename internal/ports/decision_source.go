package ports

import (
	"context"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// DecisionSource produce las decisiones de una empresa para el periodo que
// va a simularse. Cada implementación encapsula un origen distinto: el
// formulario del jugador o la heurística de un competidor.
type DecisionSource interface {
	// ProduceDecisions devuelve un registro de decisiones sintácticamente
	// válido para la empresa dada. Recibe su último resultado (nil en el
	// primer periodo) y el precio medio estimado del mercado.
	ProduceDecisions(ctx context.Context, company domain.Company, last *domain.PeriodResult, marketAvgPrice float64) (domain.Decisions, error)
}
