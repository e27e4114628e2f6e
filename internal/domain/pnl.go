package domain

// PnL es la cuenta de resultados de un paso de simulación (o la agregada
// de un periodo). Todas las líneas son derivadas: se calculan una vez y
// no se mutan después.
type PnL struct {
	Revenue      float64
	COGS         float64
	Payroll      float64
	Marketing    float64
	FixedCosts   float64
	EBITDA       float64
	Depreciation float64
	EBIT         float64
	Interest     float64
	Taxes        float64
	Profit       float64
}

// PnLInputs son los flujos de un paso necesarios para derivar la cuenta
// de resultados completa.
type PnLInputs struct {
	Revenue      float64
	SalesUnits   float64
	UnitCost     float64 // coste material + variable por unidad vendida
	Workers      float64
	AnnualSalary float64
	Marketing    float64
	FixedCosts   float64
	Depreciation float64
	Interest     float64
	TaxRate      float64
}

// ComputePnL deriva la cuenta de resultados de un paso.
//
//	cogs    = unidades vendidas × coste unitario
//	payroll = plantilla × salario anual completo — sin prorratear por
//	          duración del paso; la agregación mensual lo normaliza
//	ebitda  = ingresos − cogs − payroll − marketing − costes fijos
//	ebit    = ebitda − amortización
//	preTax  = ebit − intereses
//	taxes   = preTax × taxRate solo si preTax > 0
//	profit  = preTax − taxes
func ComputePnL(in PnLInputs) PnL {
	cogs := in.SalesUnits * in.UnitCost
	payroll := in.Workers * in.AnnualSalary

	ebitda := in.Revenue - cogs - payroll - in.Marketing - in.FixedCosts
	ebit := ebitda - in.Depreciation
	preTax := ebit - in.Interest

	var taxes float64
	if preTax > 0 {
		taxes = preTax * in.TaxRate
	}

	return PnL{
		Revenue:      in.Revenue,
		COGS:         cogs,
		Payroll:      payroll,
		Marketing:    in.Marketing,
		FixedCosts:   in.FixedCosts,
		EBITDA:       ebitda,
		Depreciation: in.Depreciation,
		EBIT:         ebit,
		Interest:     in.Interest,
		Taxes:        taxes,
		Profit:       preTax - taxes,
	}
}
