package domain

// PeriodMode indica cómo se simuló un periodo: un único paso anual o
// doce pasos mensuales agregados.
type PeriodMode string

const (
	ModeAnnual  PeriodMode = "annual"
	ModeMonthly PeriodMode = "monthly"
)

// PeriodResult es la foto inmutable de una empresa al cierre de un periodo.
// Se añade al histórico de la empresa y no se reescribe nunca.
type PeriodResult struct {
	Period int
	Mode   PeriodMode

	// Mercado y operaciones
	MarketShare       float64 // en modo mensual: media ponderada por demanda
	DemandAssigned    float64
	Production        float64
	SalesUnits        float64
	EndInventoryUnits float64

	// CapexFulfilled indica si la compra de máquinas solicitada se ejecutó.
	// La simulación descarta en silencio compras sin caja suficiente; el
	// flag lo hace observable sin que el caller rederive la caja disponible.
	// En modo mensual: true solo si se cumplió todos los meses con compra.
	CapexFulfilled bool

	// Estados financieros
	PnL         PnL
	CashEnd     float64
	EquityEnd   float64
	DebtEnd     float64
	MachinesEnd float64
	WorkersEnd  float64

	StatusEnd CompanyStatus
}
