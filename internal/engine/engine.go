// Package engine implementa el motor determinista de simulación: asignación
// de mercado, pasos de simulación (año completo o mes) y la orquestación de
// un periodo con su agregación mensual.
//
// El motor es puro: no muta las empresas que recibe, no tiene aleatoriedad
// y no devuelve errores — los inputs inválidos se absorben recortando.
package engine

import (
	"github.com/alejandrodnm/simempresa/config"
)

// Simulator ejecuta periodos de simulación con las constantes económicas
// fijadas en su construcción. No vuelve a leer configuración después.
type Simulator struct {
	cfg            config.EngineConfig
	monthlyWeights []float64    // curva mensual normalizada a suma 1
	monthlyPeriods map[int]bool // periodos que se simulan mes a mes
}

// New construye el simulador. Normaliza la curva de demanda mensual una
// sola vez y fija qué periodos se simulan mes a mes.
func New(cfg config.EngineConfig, monthlyPeriods []int) *Simulator {
	s := &Simulator{
		cfg:            cfg,
		monthlyWeights: normalizeWeights(cfg.MonthlyDemandWeights),
		monthlyPeriods: make(map[int]bool, len(monthlyPeriods)),
	}
	for _, p := range monthlyPeriods {
		s.monthlyPeriods[p] = true
	}
	return s
}

// normalizeWeights re-normaliza la curva a suma 1. Suma 0 se trata como 1
// para no dividir por cero.
func normalizeWeights(weights []float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		sum = 1
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}
