package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/alejandrodnm/simempresa/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier imprimiendo los estados financieros
// por consola.
type Console struct {
	out    io.Writer
	detail bool // imprime además P&L y balance completos por empresa
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(detail bool) *Console {
	return &Console{out: os.Stdout, detail: detail}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, detail bool) *Console {
	return &Console{out: w, detail: detail}
}

// PublishPeriod imprime la tabla de mercado del periodo y, en modo detalle,
// la cuenta de resultados y el balance de cada empresa.
func (c *Console) PublishPeriod(_ context.Context, companies []domain.Company, results map[string]domain.PeriodResult) error {
	if len(results) == 0 {
		return nil
	}

	first := results[companies[0].ID]
	modeLabel := "anual"
	if first.Mode == domain.ModeMonthly {
		modeLabel = "mensual (12 meses)"
	}
	fmt.Fprintf(c.out, "\n=== Periodo %d — %s ===\n", first.Period, modeLabel)

	c.printMarketTable(companies, results)

	for _, co := range companies {
		if r, ok := results[co.ID]; ok && !r.CapexFulfilled {
			fmt.Fprintf(c.out, "  ⚠ %s: compra de máquinas descartada por caja insuficiente\n", co.Name)
		}
	}

	if c.detail {
		c.printPnLTable(companies, results)
		c.printBalanceTable(companies, results)
	}
	return nil
}

// PublishFinal imprime la clasificación final por patrimonio neto.
func (c *Console) PublishFinal(_ context.Context, companies []domain.Company, history map[string][]domain.PeriodResult) error {
	ranked := domain.CloneCompanies(companies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Balance.Equity > ranked[j].Balance.Equity
	})

	fmt.Fprintf(c.out, "\n=== CLASIFICACIÓN FINAL ===\n")

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Empresa", "Patrimonio", "Caja", "Deuda", "Beneficio acum.", "Estado")

	for i, co := range ranked {
		var totalProfit float64
		for _, r := range history[co.ID] {
			totalProfit += r.PnL.Profit
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			co.Name,
			fmt.Sprintf("%.0f", co.Balance.Equity),
			fmt.Sprintf("%.0f", co.Balance.Cash),
			fmt.Sprintf("%.0f", co.Balance.Debt),
			fmt.Sprintf("%.0f", totalProfit),
			statusLabel(co.Status),
		)
	}
	table.Render()

	if len(ranked) > 0 && ranked[0].IsActive() {
		fmt.Fprintf(c.out, "  Ganador: %s\n", ranked[0].Name)
	}
	return nil
}

// PrintSummary imprime el resumen agregado de la sesión persistida.
func (c *Console) PrintSummary(sum domain.SessionSummary) {
	fmt.Fprintf(c.out, "\n=== RESUMEN DE SESIÓN (%d periodos) ===\n", sum.Periods)

	table := tablewriter.NewWriter(c.out)
	table.Header("Empresa", "Beneficio total", "Patrimonio final", "Caja final", "Estado")
	for _, t := range sum.Companies {
		table.Append(
			t.Name,
			fmt.Sprintf("%.0f", t.TotalProfit),
			fmt.Sprintf("%.0f", t.FinalEquity),
			fmt.Sprintf("%.0f", t.FinalCash),
			statusLabel(t.Status),
		)
	}
	table.Render()
}

// printMarketTable: una fila por empresa con mercado, operaciones y cierre.
func (c *Console) printMarketTable(companies []domain.Company, results map[string]domain.PeriodResult) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Empresa", "Cuota", "Demanda", "Prod.", "Ventas", "Invent.", "Ingresos", "Beneficio", "Caja", "Estado")

	for _, co := range companies {
		r, ok := results[co.ID]
		if !ok {
			continue
		}
		table.Append(
			co.Name,
			fmt.Sprintf("%.1f%%", r.MarketShare*100),
			fmt.Sprintf("%.0f", r.DemandAssigned),
			fmt.Sprintf("%.0f", r.Production),
			fmt.Sprintf("%.0f", r.SalesUnits),
			fmt.Sprintf("%.0f", r.EndInventoryUnits),
			fmt.Sprintf("%.0f", r.PnL.Revenue),
			fmt.Sprintf("%.0f", r.PnL.Profit),
			fmt.Sprintf("%.0f", r.CashEnd),
			statusLabel(r.StatusEnd),
		)
	}
	table.Render()
}

// printPnLTable: cuenta de resultados transpuesta — una línea por partida,
// una columna por empresa.
func (c *Console) printPnLTable(companies []domain.Company, results map[string]domain.PeriodResult) {
	fmt.Fprintln(c.out, "  Cuenta de resultados:")

	headers := []any{"Línea"}
	for _, co := range companies {
		headers = append(headers, co.Name)
	}
	table := tablewriter.NewWriter(c.out)
	table.Header(headers...)

	lines := []struct {
		label string
		pick  func(domain.PnL) float64
	}{
		{"Ingresos", func(p domain.PnL) float64 { return p.Revenue }},
		{"Coste de ventas", func(p domain.PnL) float64 { return p.COGS }},
		{"Nóminas", func(p domain.PnL) float64 { return p.Payroll }},
		{"Marketing", func(p domain.PnL) float64 { return p.Marketing }},
		{"Costes fijos", func(p domain.PnL) float64 { return p.FixedCosts }},
		{"EBITDA", func(p domain.PnL) float64 { return p.EBITDA }},
		{"Amortización", func(p domain.PnL) float64 { return p.Depreciation }},
		{"EBIT", func(p domain.PnL) float64 { return p.EBIT }},
		{"Intereses", func(p domain.PnL) float64 { return p.Interest }},
		{"Impuestos", func(p domain.PnL) float64 { return p.Taxes }},
		{"Beneficio", func(p domain.PnL) float64 { return p.Profit }},
	}

	for _, line := range lines {
		row := []any{line.label}
		for _, co := range companies {
			row = append(row, fmt.Sprintf("%.0f", line.pick(results[co.ID].PnL)))
		}
		table.Append(row...)
	}
	table.Render()
}

// printBalanceTable: balance de cierre transpuesto.
func (c *Console) printBalanceTable(companies []domain.Company, results map[string]domain.PeriodResult) {
	fmt.Fprintln(c.out, "  Balance de cierre:")

	headers := []any{"Partida"}
	for _, co := range companies {
		headers = append(headers, co.Name)
	}
	table := tablewriter.NewWriter(c.out)
	table.Header(headers...)

	rows := []struct {
		label string
		pick  func(domain.PeriodResult) float64
	}{
		{"Caja", func(r domain.PeriodResult) float64 { return r.CashEnd }},
		{"Patrimonio", func(r domain.PeriodResult) float64 { return r.EquityEnd }},
		{"Deuda", func(r domain.PeriodResult) float64 { return r.DebtEnd }},
		{"Máquinas", func(r domain.PeriodResult) float64 { return r.MachinesEnd }},
		{"Plantilla", func(r domain.PeriodResult) float64 { return r.WorkersEnd }},
		{"Inventario", func(r domain.PeriodResult) float64 { return r.EndInventoryUnits }},
	}

	for _, row := range rows {
		cells := []any{row.label}
		for _, co := range companies {
			cells = append(cells, fmt.Sprintf("%.0f", row.pick(results[co.ID])))
		}
		table.Append(cells...)
	}
	table.Render()
}

func statusLabel(s domain.CompanyStatus) string {
	if s == domain.StatusBankrupt {
		return "QUIEBRA"
	}
	return "activa"
}
