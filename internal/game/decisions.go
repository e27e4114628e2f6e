package game

import "github.com/alejandrodnm/simempresa/internal/domain"

// fallbackPrice es el ancla de precio cuando no hay decisiones previas de
// las que estimar la media del mercado.
const fallbackPrice = 30

// DefaultPlayerDecisions son las decisiones de partida del jugador: se usan
// como valores por defecto del formulario y como decisión del modo auto.
func DefaultPlayerDecisions() domain.Decisions {
	return domain.Decisions{
		Price:            30,
		Marketing:        40000,
		Workers:          12,
		ProductionTarget: 5000,
		MachinesToBuy:    0,
		LoanDraw:         0,
		LoanRepay:        0,
	}
}

// MarketAvgPrice estima el precio medio del mercado: la media de los precios
// de la última decisión de cada empresa activa. Sin empresas activas o sin
// decisiones previas devuelve el ancla por defecto.
func MarketAvgPrice(companies []domain.Company, lastDecisions map[string]domain.Decisions) float64 {
	if len(lastDecisions) == 0 {
		return fallbackPrice
	}

	var sum float64
	var n int
	for _, c := range companies {
		if !c.IsActive() {
			continue
		}
		if d, ok := lastDecisions[c.ID]; ok {
			sum += d.Price
			n++
		}
	}
	if n == 0 {
		return fallbackPrice
	}
	return sum / float64(n)
}
