package domain

import "math"

// Decisions son las decisiones anuales de una empresa para un periodo.
// En los periodos mensuales el mismo registro se reutiliza sin cambios
// durante los doce meses: la decisión es un compromiso anual.
//
// Ningún campo se rechaza: el motor absorbe valores inválidos recortando
// (precio con suelo 0.01, resto con suelo 0, enteros truncados).
type Decisions struct {
	// Comercial
	Price     float64 // precio de venta unitario
	Marketing float64 // gasto en marketing del periodo

	// Operaciones
	Workers          float64 // plantilla deseada (se trunca a entero)
	ProductionTarget float64 // unidades anuales deseadas

	// Capex
	MachinesToBuy float64 // máquinas a comprar (se trunca a entero)

	// Finanzas
	LoanDraw  float64 // nueva deuda solicitada (>= 0)
	LoanRepay float64 // amortización voluntaria solicitada (>= 0)
}

// PriceFloor es el precio efectivo mínimo: evita divisiones por cero
// en la asignación de mercado y precios de venta nulos.
const PriceFloor = 0.01

// EffectivePrice devuelve el precio con el suelo aplicado.
func (d Decisions) EffectivePrice() float64 {
	return math.Max(PriceFloor, d.Price)
}

// EffectiveMarketing devuelve el gasto en marketing recortado a >= 0.
func (d Decisions) EffectiveMarketing() float64 {
	return math.Max(0, d.Marketing)
}

// EffectiveWorkers devuelve la plantilla truncada a entero y >= 0.
func (d Decisions) EffectiveWorkers() float64 {
	return math.Max(0, math.Floor(d.Workers))
}

// EffectiveMachinesToBuy devuelve las máquinas a comprar, entero >= 0.
func (d Decisions) EffectiveMachinesToBuy() float64 {
	return math.Max(0, math.Floor(d.MachinesToBuy))
}
