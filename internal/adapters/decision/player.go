package decision

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alejandrodnm/simempresa/internal/domain"
)

// Player implementa ports.DecisionSource leyendo el formulario de
// decisiones por consola. Cada campo muestra su valor por defecto (la
// última decisión del jugador, o los defaults de la partida en el primer
// periodo); entrada vacía o no numérica conserva el default — mismo
// criterio de absorción que el motor, que recorta en vez de rechazar.
type Player struct {
	in       *bufio.Reader
	out      io.Writer
	defaults domain.Decisions
	hasLast  bool
	last     domain.Decisions
}

// NewPlayer crea el formulario sobre los reader/writer dados.
func NewPlayer(in io.Reader, out io.Writer, defaults domain.Decisions) *Player {
	return &Player{in: bufio.NewReader(in), out: out, defaults: defaults}
}

// ProduceDecisions pregunta campo a campo y devuelve el registro completo.
func (p *Player) ProduceDecisions(ctx context.Context, company domain.Company, _ *domain.PeriodResult, marketAvgPrice float64) (domain.Decisions, error) {
	base := p.defaults
	if p.hasLast {
		base = p.last
	}

	fmt.Fprintf(p.out, "\n--- Decisiones de %s (precio medio del mercado: %.2f) ---\n", company.Name, marketAvgPrice)
	fmt.Fprintf(p.out, "Caja %.0f | Patrimonio %.0f | Deuda %.0f | Máquinas %.0f | Plantilla %.0f | Inventario %.0f\n",
		company.Balance.Cash, company.Balance.Equity, company.Balance.Debt,
		company.Balance.Machines, company.Balance.Workers, company.Balance.InventoryUnits)

	d := domain.Decisions{}
	var err error
	if d.Price, err = p.ask(ctx, "Precio de venta", base.Price); err != nil {
		return domain.Decisions{}, err
	}
	if d.Marketing, err = p.ask(ctx, "Gasto en marketing", base.Marketing); err != nil {
		return domain.Decisions{}, err
	}
	if d.Workers, err = p.ask(ctx, "Plantilla", base.Workers); err != nil {
		return domain.Decisions{}, err
	}
	if d.ProductionTarget, err = p.ask(ctx, "Producción objetivo (uds/año)", base.ProductionTarget); err != nil {
		return domain.Decisions{}, err
	}
	if d.MachinesToBuy, err = p.ask(ctx, "Máquinas a comprar", base.MachinesToBuy); err != nil {
		return domain.Decisions{}, err
	}
	if d.LoanDraw, err = p.ask(ctx, "Nueva deuda", base.LoanDraw); err != nil {
		return domain.Decisions{}, err
	}
	if d.LoanRepay, err = p.ask(ctx, "Amortización de deuda", base.LoanRepay); err != nil {
		return domain.Decisions{}, err
	}

	p.last = d
	p.hasLast = true
	return d, nil
}

// ask imprime el prompt con el default y parsea la respuesta. Entrada vacía
// o inválida devuelve el default.
func (p *Player) ask(ctx context.Context, label string, def float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("decision.Player: %w", err)
	}

	fmt.Fprintf(p.out, "%s [%g]: ", label, def)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return def, nil
		}
		return 0, fmt.Errorf("decision.Player: read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	v, perr := strconv.ParseFloat(line, 64)
	if perr != nil {
		fmt.Fprintf(p.out, "  valor no numérico, se mantiene %g\n", def)
		return def, nil
	}
	return v, nil
}

// Static implementa ports.DecisionSource devolviendo siempre el mismo
// registro. Es el origen del jugador en el modo auto.
type Static struct {
	decisions domain.Decisions
}

// NewStatic crea el origen fijo.
func NewStatic(d domain.Decisions) *Static {
	return &Static{decisions: d}
}

// ProduceDecisions devuelve el registro fijado.
func (s *Static) ProduceDecisions(context.Context, domain.Company, *domain.PeriodResult, float64) (domain.Decisions, error) {
	return s.decisions, nil
}
