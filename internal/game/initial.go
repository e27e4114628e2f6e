package game

import (
	"fmt"

	"github.com/alejandrodnm/simempresa/config"
	"github.com/alejandrodnm/simempresa/internal/domain"
)

// PlayerID identifica a la empresa del jugador.
const PlayerID = "player"

// CompetitorID devuelve el id de la empresa competidora i (empezando en 1).
func CompetitorID(i int) string {
	return fmt.Sprintf("ai%d", i)
}

// NewCompanies crea las empresas de la partida con balances idénticos: el
// jugador y los competidores configurados. El parque inicial de máquinas
// se compra con el capital de arranque, así que la caja inicial es el
// capital menos el coste de las máquinas y el activo fijo entra a coste.
func NewCompanies(cfg config.GameConfig, machineCost float64) []domain.Company {
	machines := float64(cfg.InitialMachines)
	balance := domain.Balance{
		Cash:           cfg.InitialCapital - machines*machineCost,
		InventoryUnits: 0,
		FixedAssetsNet: machines * machineCost,
		Equity:         cfg.InitialCapital,
		Debt:           0,
		Machines:       machines,
		Workers:        float64(cfg.InitialWorkers),
	}

	companies := make([]domain.Company, 0, 1+len(cfg.CompetitorNames))
	companies = append(companies, domain.Company{
		ID:      PlayerID,
		Name:    cfg.PlayerName,
		Balance: balance,
		Status:  domain.StatusActive,
	})
	for i, name := range cfg.CompetitorNames {
		companies = append(companies, domain.Company{
			ID:      CompetitorID(i + 1),
			Name:    name,
			Balance: balance,
			Status:  domain.StatusActive,
		})
	}
	return companies
}
