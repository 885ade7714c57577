// Package persistence provides SQLite-based archiving of completed
// simulation runs. The indexing core never imports this package; only the
// demo driver does.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/popsim/internal/pop"
)

// DB wraps a SQLite connection for run archiving.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		nyears INTEGER NOT NULL,
		max_seasons INTEGER NOT NULL,
		nages INTEGER NOT NULL,
		nsexes INTEGER NOT NULL,
		nareas INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subpopulations (
		run_id TEXT NOT NULL,
		sex INTEGER NOT NULL,
		area_ord INTEGER NOT NULL,
		entity_id INTEGER NOT NULL,
		area_entity_id INTEGER NOT NULL,
		ages_json TEXT NOT NULL,
		quantities_json TEXT NOT NULL,
		PRIMARY KEY (run_id, sex, area_ord)
	);

	CREATE INDEX IF NOT EXISTS idx_subpops_run ON subpopulations(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunInfo describes one archived run.
type RunInfo struct {
	ID         string `db:"id"`
	CreatedAt  string `db:"created_at"`
	NYears     int    `db:"nyears"`
	MaxSeasons int    `db:"max_seasons"`
	NAges      int    `db:"nages"`
	NSexes     int    `db:"nsexes"`
	NAreas     int    `db:"nareas"`
}

// SaveRun archives an evaluated population's grid and returns the new run
// id. The population must have completed Evaluate (or Finalize).
func (db *DB) SaveRun(p *pop.Population) (string, error) {
	if p.State() < pop.StateEvaluated {
		return "", fmt.Errorf("save run: population is %s, want evaluated", p.State())
	}

	runID := uuid.NewString()
	m := p.Model()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, created_at, nyears, max_seasons, nages, nsexes, nareas)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339),
		m.Years(), m.MaxSeasons(), m.Ages(), p.NSexes(), len(p.Areas()))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO subpopulations
		(run_id, sex, area_ord, entity_id, area_entity_id, ages_json, quantities_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for sex := 0; sex < p.NSexes(); sex++ {
		subs, err := p.Subpopulations(sex)
		if err != nil {
			return "", err
		}
		for areaOrd, sub := range subs {
			agesJSON, _ := json.Marshal(sub.Ages())
			quantitiesJSON, _ := json.Marshal(sub.Quantities())

			_, err := stmt.Exec(runID, sex, areaOrd, sub.ID(), sub.Area().ID(),
				string(agesJSON), string(quantitiesJSON))
			if err != nil {
				return "", fmt.Errorf("insert subpopulation sex=%d area=%d: %w", sex, areaOrd, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run archived", "run_id", runID, "sexes", p.NSexes(), "areas", len(p.Areas()))
	return runID, nil
}

// LoadQuantities restores the derived-quantity array of one archived
// partition cell.
func (db *DB) LoadQuantities(runID string, sex, areaOrd int) ([]float64, error) {
	var quantitiesJSON string
	err := db.conn.Get(&quantitiesJSON,
		`SELECT quantities_json FROM subpopulations WHERE run_id = ? AND sex = ? AND area_ord = ?`,
		runID, sex, areaOrd)
	if err != nil {
		return nil, fmt.Errorf("load quantities %s sex=%d area=%d: %w", runID, sex, areaOrd, err)
	}

	var quantities []float64
	if err := json.Unmarshal([]byte(quantitiesJSON), &quantities); err != nil {
		return nil, fmt.Errorf("decode quantities: %w", err)
	}
	return quantities, nil
}

// ListRuns returns all archived runs, newest first.
func (db *DB) ListRuns() ([]RunInfo, error) {
	var runs []RunInfo
	err := db.conn.Select(&runs, `SELECT * FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
