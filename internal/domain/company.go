package domain

// CompanyStatus es el estado de una empresa dentro de la partida.
type CompanyStatus string

const (
	StatusActive   CompanyStatus = "active"
	StatusBankrupt CompanyStatus = "bankrupt"
)

// Balance es el balance de situación de una empresa.
// machines y workers son conteos enteros representados como float64
// porque participan en la misma aritmética que el resto de partidas.
type Balance struct {
	Cash           float64 // tesorería, puede ser negativa de forma transitoria
	InventoryUnits float64 // unidades producidas y no vendidas, >= 0
	FixedAssetsNet float64 // valor neto contable de las máquinas, >= 0
	Equity         float64 // patrimonio neto
	Debt           float64 // deuda viva, >= 0
	Machines       float64
	Workers        float64
}

// Company representa una empresa de la partida: el jugador o un competidor.
type Company struct {
	ID      string
	Name    string
	Balance Balance
	Status  CompanyStatus
}

// IsActive devuelve true si la empresa sigue operando.
// Una empresa quebrada queda congelada: no produce, no vende y no
// recibe cuota de mercado en ningún paso posterior.
func (c Company) IsActive() bool {
	return c.Status == StatusActive
}

// Clone devuelve una copia profunda de la empresa.
// Balance es un struct de valores, así que la copia por valor basta.
func (c Company) Clone() Company {
	return c
}

// CloneCompanies copia el slice completo de empresas.
func CloneCompanies(companies []Company) []Company {
	out := make([]Company, len(companies))
	copy(out, companies)
	return out
}
