// Package store persists planning runs in a local SQLite database so
// earlier plans can be listed, reloaded, and compared by fingerprint.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/artplanhq/artplan/internal/errors"
	"github.com/artplanhq/artplan/internal/planner"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Config configures the plan history store
type Config struct {
	// DataDir is where the database file lives. Created if missing.
	DataDir string
}

// Run is one persisted planning run.
type Run struct {
	ID          string    `json:"id" yaml:"id"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Increment   string    `json:"increment" yaml:"increment"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint"`
	Readiness   float64   `json:"readiness" yaml:"readiness"`
	IsReady     bool      `json:"is_ready" yaml:"is_ready"`
}

// Store is the plan history backed by SQLite.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the history database under DataDir
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreOpenFailed,
			"failed to create the data directory", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "history.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreOpenFailed,
			"failed to open the plan history database", err).
			WithSuggestion("Check permissions on " + cfg.DataDir)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.Wrap(errors.ErrCodeStoreOpenFailed, "failed to configure sqlite", err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			created_at  TEXT NOT NULL DEFAULT (datetime('now')),
			increment   TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			readiness   REAL NOT NULL,
			is_ready    INTEGER NOT NULL,
			plan        BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return errors.Wrap(errors.ErrCodeStoreOpenFailed, "failed to migrate the schema", err)
	}
	return nil
}

// SaveRun persists a plan and returns the stored run metadata.
func (s *Store) SaveRun(plan *planner.ARTPlan) (Run, error) {
	blob, err := yaml.Marshal(plan)
	if err != nil {
		return Run{}, errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to encode the plan", err)
	}

	run := Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Increment:   plan.Increment.Name,
		Fingerprint: plan.Fingerprint,
		Readiness:   plan.Readiness.ReadinessScore,
		IsReady:     plan.Readiness.IsReady,
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (id, created_at, increment, fingerprint, readiness, is_ready, plan)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339), run.Increment,
		run.Fingerprint, run.Readiness, boolToInt(run.IsReady), blob)
	if err != nil {
		return Run{}, errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to save the run", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, increment, fingerprint, readiness, is_ready
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to list runs", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to list runs", err)
	}
	return runs, nil
}

// GetRun loads one run and its full plan by ID.
func (s *Store) GetRun(id string) (Run, *planner.ARTPlan, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, increment, fingerprint, readiness, is_ready, plan
		FROM runs WHERE id = ?`, id)

	var run Run
	var createdAt string
	var isReady int
	var blob []byte
	err := row.Scan(&run.ID, &createdAt, &run.Increment, &run.Fingerprint,
		&run.Readiness, &isReady, &blob)
	if err == sql.ErrNoRows {
		return Run{}, nil, errors.New(errors.ErrCodeStoreRunNotFound,
			"no run with ID "+id).
			WithSuggestion("Run 'artplan history' to list stored runs")
	}
	if err != nil {
		return Run{}, nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to load the run", err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	run.IsReady = isReady != 0

	var plan planner.ARTPlan
	if err := yaml.Unmarshal(blob, &plan); err != nil {
		return Run{}, nil, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to decode the stored plan", err)
	}
	return run, &plan, nil
}

// LatestRun returns the newest stored run, if any.
func (s *Store) LatestRun() (Run, bool, error) {
	runs, err := s.ListRuns(1)
	if err != nil {
		return Run{}, false, err
	}
	if len(runs) == 0 {
		return Run{}, false, nil
	}
	return runs[0], true, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var createdAt string
	var isReady int
	if err := rows.Scan(&run.ID, &createdAt, &run.Increment, &run.Fingerprint,
		&run.Readiness, &isReady); err != nil {
		return Run{}, errors.Wrap(errors.ErrCodeStoreQueryFailed, "failed to scan a run row", err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	run.IsReady = isReady != 0
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
