package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"ScenarioLens/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists simulation history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS simulations (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			business_id    TEXT NOT NULL,
			scenario_id    TEXT,
			decision_type  TEXT,
			quality        TEXT,
			forecast_model TEXT,
			net_change     TEXT,
			lowest_point   TEXT,
			break_even     INTEGER,
			signal_count   INTEGER,
			top_severity   TEXT,
			elapsed_ms     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sim_biz_ts ON simulations(business_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			simulation_id  TEXT NOT NULL,
			severity       TEXT NOT NULL,
			type           TEXT NOT NULL,
			description    TEXT,
			projected_date INTEGER NOT NULL,
			impact_amount  TEXT,
			mitigations    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_sim ON signals(simulation_id)`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSimulation(rec *SimulationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var breakEven sql.NullInt64
	if rec.BreakEvenDate != nil {
		breakEven = sql.NullInt64{Int64: rec.BreakEvenDate.Unix(), Valid: true}
	}

	_, err := r.db.Exec(`INSERT INTO simulations
		(id, timestamp, business_id, scenario_id, decision_type, quality,
		 forecast_model, net_change, lowest_point, break_even,
		 signal_count, top_severity, elapsed_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.SimulationID, time.Now().Unix(), rec.BusinessID, rec.ScenarioID,
		string(rec.DecisionType), rec.Quality, rec.ForecastModel,
		rec.NetChange, rec.LowestPoint, breakEven,
		rec.SignalCount, string(rec.TopSeverity), rec.ElapsedMs,
	)
	return err
}

func (r *SQLiteRecorder) RecordSignals(simulationID string, signals []model.RiskSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sig := range signals {
		_, err := r.db.Exec(`INSERT INTO signals
			(simulation_id, severity, type, description, projected_date, impact_amount, mitigations)
			VALUES (?,?,?,?,?,?,?)`,
			simulationID, string(sig.Severity), string(sig.Type), sig.Description,
			sig.ProjectedDate.Unix(), sig.ImpactAmount.StringFixed(2),
			strings.Join(sig.MitigationSuggestions, "; "),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
