package storage

// sqlite.go — registro de resultados de sesión.
//
// Estrategia:
//   - `sessions`: una fila por partida arrancada.
//   - `period_results`: una fila por empresa y periodo cerrado (UPSERT:
//     reiniciar una partida dentro de la misma sesión reescribe el periodo).
//   - Es un registro de solo escritura durante el juego; la única lectura
//     es el agregado del resumen final. No hay carga ni reanudación.
//   - Prune automático al arrancar: sesiones (y sus resultados) > 30 días.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/simempresa/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por partida
CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    player     TEXT     NOT NULL,
    started_at DATETIME NOT NULL
);

-- Una fila por empresa y periodo cerrado
CREATE TABLE IF NOT EXISTS period_results (
    session_id     TEXT    NOT NULL,
    period         INTEGER NOT NULL,
    company_id     TEXT    NOT NULL,
    company_name   TEXT    NOT NULL,
    mode           TEXT    NOT NULL,
    market_share   REAL    NOT NULL DEFAULT 0,
    demand         REAL    NOT NULL DEFAULT 0,
    production     REAL    NOT NULL DEFAULT 0,
    sales_units    REAL    NOT NULL DEFAULT 0,
    end_inventory  REAL    NOT NULL DEFAULT 0,
    capex_done     INTEGER NOT NULL DEFAULT 1,
    revenue        REAL    NOT NULL DEFAULT 0,
    cogs           REAL    NOT NULL DEFAULT 0,
    payroll        REAL    NOT NULL DEFAULT 0,
    marketing      REAL    NOT NULL DEFAULT 0,
    fixed_costs    REAL    NOT NULL DEFAULT 0,
    ebitda         REAL    NOT NULL DEFAULT 0,
    depreciation   REAL    NOT NULL DEFAULT 0,
    ebit           REAL    NOT NULL DEFAULT 0,
    interest       REAL    NOT NULL DEFAULT 0,
    taxes          REAL    NOT NULL DEFAULT 0,
    profit         REAL    NOT NULL DEFAULT 0,
    cash_end       REAL    NOT NULL DEFAULT 0,
    equity_end     REAL    NOT NULL DEFAULT 0,
    debt_end       REAL    NOT NULL DEFAULT 0,
    machines_end   REAL    NOT NULL DEFAULT 0,
    workers_end    REAL    NOT NULL DEFAULT 0,
    status_end     TEXT    NOT NULL,
    PRIMARY KEY (session_id, period, company_id)
);

CREATE INDEX IF NOT EXISTS idx_sessions_at   ON sessions(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_results_sess  ON period_results(session_id, period);
`

// retentionSessions: las partidas son cortas; 30 días de histórico sobran.
const retentionSessions = 30 * 24 * time.Hour

// SQLiteStore implementa ports.ResultStore usando SQLite (pure Go, sin CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia sesiones antiguas.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// BeginSession registra el arranque de la partida.
func (s *SQLiteStore) BeginSession(ctx context.Context, sessionID, playerName string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (id, player, started_at) VALUES (?, ?, ?)`,
		sessionID, playerName, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("storage.BeginSession: insert session: %w", err)
	}
	return nil
}

// SaveResults persiste los resultados de un periodo cerrado, una fila por
// empresa, en una única transacción.
func (s *SQLiteStore) SaveResults(ctx context.Context, sessionID string, companies []domain.Company, results map[string]domain.PeriodResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveResults: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO period_results
			(session_id, period, company_id, company_name, mode,
			 market_share, demand, production, sales_units, end_inventory, capex_done,
			 revenue, cogs, payroll, marketing, fixed_costs, ebitda,
			 depreciation, ebit, interest, taxes, profit,
			 cash_end, equity_end, debt_end, machines_end, workers_end, status_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, period, company_id) DO UPDATE SET
			mode          = excluded.mode,
			market_share  = excluded.market_share,
			demand        = excluded.demand,
			production    = excluded.production,
			sales_units   = excluded.sales_units,
			end_inventory = excluded.end_inventory,
			capex_done    = excluded.capex_done,
			revenue       = excluded.revenue,
			cogs          = excluded.cogs,
			payroll       = excluded.payroll,
			marketing     = excluded.marketing,
			fixed_costs   = excluded.fixed_costs,
			ebitda        = excluded.ebitda,
			depreciation  = excluded.depreciation,
			ebit          = excluded.ebit,
			interest      = excluded.interest,
			taxes         = excluded.taxes,
			profit        = excluded.profit,
			cash_end      = excluded.cash_end,
			equity_end    = excluded.equity_end,
			debt_end      = excluded.debt_end,
			machines_end  = excluded.machines_end,
			workers_end   = excluded.workers_end,
			status_end    = excluded.status_end
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveResults: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range companies {
		r, ok := results[c.ID]
		if !ok {
			continue
		}
		capexDone := 0
		if r.CapexFulfilled {
			capexDone = 1
		}

		if _, err := stmt.ExecContext(ctx,
			sessionID, r.Period, c.ID, c.Name, string(r.Mode),
			r.MarketShare, r.DemandAssigned, r.Production, r.SalesUnits, r.EndInventoryUnits, capexDone,
			r.PnL.Revenue, r.PnL.COGS, r.PnL.Payroll, r.PnL.Marketing, r.PnL.FixedCosts, r.PnL.EBITDA,
			r.PnL.Depreciation, r.PnL.EBIT, r.PnL.Interest, r.PnL.Taxes, r.PnL.Profit,
			r.CashEnd, r.EquityEnd, r.DebtEnd, r.MachinesEnd, r.WorkersEnd, string(r.StatusEnd),
		); err != nil {
			return fmt.Errorf("storage.SaveResults: upsert %s p%d: %w", c.ID, r.Period, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveResults: commit: %w", err)
	}
	return nil
}

// SessionSummary agrega la sesión: periodos jugados y totales por empresa,
// con el cierre del último periodo registrado.
func (s *SQLiteStore) SessionSummary(ctx context.Context, sessionID string) (domain.SessionSummary, error) {
	sum := domain.SessionSummary{SessionID: sessionID}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT period) FROM period_results WHERE session_id = ?`,
		sessionID,
	).Scan(&sum.Periods); err != nil {
		return sum, fmt.Errorf("storage.SessionSummary: count periods: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.company_id, r.company_name,
		       SUM(r.profit),
		       last.equity_end, last.cash_end, last.status_end
		FROM period_results r
		JOIN period_results last
		  ON last.session_id = r.session_id
		 AND last.company_id = r.company_id
		 AND last.period = (SELECT MAX(period) FROM period_results
		                    WHERE session_id = r.session_id AND company_id = r.company_id)
		WHERE r.session_id = ?
		GROUP BY r.company_id
		ORDER BY last.equity_end DESC
	`, sessionID)
	if err != nil {
		return sum, fmt.Errorf("storage.SessionSummary: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.CompanyTotals
		var status string
		if err := rows.Scan(&t.ID, &t.Name, &t.TotalProfit, &t.FinalEquity, &t.FinalCash, &status); err != nil {
			return sum, fmt.Errorf("storage.SessionSummary: scan row: %w", err)
		}
		t.Status = domain.CompanyStatus(status)
		sum.Companies = append(sum.Companies, t)
	}
	return sum, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// pruneOld elimina sesiones antiguas y sus resultados para mantener la DB
// ligera.
func (s *SQLiteStore) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionSessions)
	s.db.ExecContext(ctx, `DELETE FROM period_results WHERE session_id IN
		(SELECT id FROM sessions WHERE started_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM sessions WHERE started_at < ?`, cutoff)
}
