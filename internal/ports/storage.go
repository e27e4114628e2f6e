package ports

import (
	"context"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// ResultStore persiste el registro de resultados de una sesión de juego.
// Es un registro de solo escritura durante la partida — no hay carga ni
// reanudación de partidas guardadas.
type ResultStore interface {
	// BeginSession registra el arranque de una sesión.
	BeginSession(ctx context.Context, sessionID, playerName string) error

	// SaveResults persiste los resultados de un periodo cerrado.
	SaveResults(ctx context.Context, sessionID string, companies []domain.Company, results map[string]domain.PeriodResult) error

	// SessionSummary devuelve los agregados de la sesión para el resumen final.
	SessionSummary(ctx context.Context, sessionID string) (domain.SessionSummary, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
