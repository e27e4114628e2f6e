package engine

import (
	"math"
	"sort"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// AllocateMarket reparte la demanda del paso entre empresas en forma de
// cuotas de mercado. Las cuotas de las empresas activas suman 1; las
// quebradas reciben siempre 0.
//
//	attractiveness_i = exp(-k × (p/Pref − 1)) × (marketing + 1)^alpha
//
// Pref es la MEDIANA de los precios efectivos activos, no la media: amortigua
// que un precio extremo de una sola empresa distorsione la referencia. Un
// precio por debajo de la mediana aumenta el atractivo exponencialmente
// (suave, acotado por 0); el marketing tiene rendimientos decrecientes vía
// el exponente sublineal.
func (s *Simulator) AllocateMarket(companies []domain.Company, decisions map[string]domain.Decisions) map[string]float64 {
	shares := make(map[string]float64, len(companies))
	for _, c := range companies {
		shares[c.ID] = 0
	}

	var active []domain.Company
	for _, c := range companies {
		if c.IsActive() {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return shares
	}

	prices := make([]float64, len(active))
	for i, c := range active {
		prices[i] = decisions[c.ID].EffectivePrice()
	}
	pref := median(prices)
	if pref == 0 {
		pref = 1
	}

	attrs := make([]float64, len(active))
	var sum float64
	for i, c := range active {
		d := decisions[c.ID]
		priceTerm := math.Exp(-s.cfg.PriceSensitivity * (d.EffectivePrice()/pref - 1))
		mkTerm := math.Pow(d.EffectiveMarketing()+1, s.cfg.MarketingAlpha)
		attrs[i] = priceTerm * mkTerm
		sum += attrs[i]
	}
	if sum == 0 {
		sum = 1
	}

	for i, c := range active {
		shares[c.ID] = attrs[i] / sum
	}
	return shares
}

// median devuelve la mediana; con cuenta par, la media de los dos valores
// centrales. Slice vacío devuelve 0.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
