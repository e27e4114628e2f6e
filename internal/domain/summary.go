package domain

// SessionSummary son los agregados de una sesión de juego persistida,
// usados para el resumen al salir.
type SessionSummary struct {
	SessionID string
	Periods   int
	Companies []CompanyTotals
}

// CompanyTotals acumula la trayectoria de una empresa durante la sesión.
type CompanyTotals struct {
	ID          string
	Name        string
	TotalProfit float64
	FinalEquity float64
	FinalCash   float64
	Status      CompanyStatus
}
