package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"ScenarioLens/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore reads business snapshots from a SQLite database maintained by
// the ingestion service.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the ingestion service can write while the engine reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS businesses (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			location        TEXT,
			monthly_revenue TEXT NOT NULL,
			employee_count  INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS history_points (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			business_id TEXT NOT NULL,
			date        INTEGER NOT NULL,
			kind        TEXT NOT NULL,
			value       TEXT NOT NULL,
			confidence  REAL NOT NULL DEFAULT 1.0,
			source      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_biz_date ON history_points(business_id, kind, date)`,

		`CREATE TABLE IF NOT EXISTS watched_scenarios (
			id          TEXT PRIMARY KEY,
			business_id TEXT NOT NULL,
			label       TEXT,
			params      TEXT NOT NULL,
			created_at  INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// LoadBusiness returns an immutable snapshot of a business and its
// historical series, ordered date-ascending.
func (s *SQLiteStore) LoadBusiness(id string) (*model.BusinessContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	biz := &model.BusinessContext{ID: id}
	var monthlyRevenue string
	err := s.db.QueryRow(
		`SELECT name, location, monthly_revenue, employee_count FROM businesses WHERE id = ?`, id,
	).Scan(&biz.Name, &biz.Location, &monthlyRevenue, &biz.EmployeeCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("business %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	biz.MonthlyRevenue, err = decimal.NewFromString(monthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("parse monthly revenue for %s: %w", id, err)
	}

	biz.RevenueHistory, err = s.loadHistory(id, "revenue")
	if err != nil {
		return nil, err
	}
	biz.ExpenseHistory, err = s.loadHistory(id, "expense")
	if err != nil {
		return nil, err
	}
	return biz, nil
}

func (s *SQLiteStore) loadHistory(businessID, kind string) ([]model.DataPoint, error) {
	rows, err := s.db.Query(
		`SELECT date, value, confidence, source FROM history_points
		 WHERE business_id = ? AND kind = ? ORDER BY date ASC`, businessID, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s history: %w", kind, err)
	}
	defer rows.Close()

	var points []model.DataPoint
	for rows.Next() {
		var ts int64
		var value string
		var p model.DataPoint
		var source sql.NullString
		if err := rows.Scan(&ts, &value, &p.Confidence, &source); err != nil {
			return nil, fmt.Errorf("scan %s history: %w", kind, err)
		}
		p.Date = time.Unix(ts, 0).UTC()
		p.Value, err = decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("parse %s history value: %w", kind, err)
		}
		p.Source = source.String
		points = append(points, p)
	}
	return points, rows.Err()
}

// ListWatched returns all scenarios flagged for periodic re-simulation.
func (s *SQLiteStore) ListWatched() ([]WatchedScenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, business_id, label, params FROM watched_scenarios ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list watched scenarios: %w", err)
	}
	defer rows.Close()

	var watched []WatchedScenario
	for rows.Next() {
		var w WatchedScenario
		var label sql.NullString
		var params string
		if err := rows.Scan(&w.ID, &w.BusinessID, &label, &params); err != nil {
			return nil, fmt.Errorf("scan watched scenario: %w", err)
		}
		w.Label = label.String
		if err := json.Unmarshal([]byte(params), &w.Params); err != nil {
			return nil, fmt.Errorf("parse params for scenario %s: %w", w.ID, err)
		}
		watched = append(watched, w)
	}
	return watched, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
