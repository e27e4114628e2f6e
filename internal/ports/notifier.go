package ports

import (
	"context"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// Notifier presenta los resultados de la simulación al usuario.
type Notifier interface {
	// PublishPeriod muestra los resultados de un periodo cerrado.
	// En la implementación de consola, imprime tablas formateadas.
	PublishPeriod(ctx context.Context, companies []domain.Company, results map[string]domain.PeriodResult) error

	// PublishFinal muestra la clasificación final de la partida.
	PublishFinal(ctx context.Context, companies []domain.Company, history map[string][]domain.PeriodResult) error
}
