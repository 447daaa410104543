package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"CrossSentinel/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while a scan writes.
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
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          TEXT PRIMARY KEY,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			window_from TEXT,
			window_to   TEXT,
			scanned     INTEGER,
			skipped     INTEGER,
			matches     INTEGER,
			outcome     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_runs_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS scan_matches (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id    TEXT NOT NULL REFERENCES scan_runs(id),
			ticker     TEXT NOT NULL,
			cross_date TEXT,
			last_close REAL,
			ema        REAL,
			sma        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_matches_ticker ON scan_matches(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes the run and its matches in one transaction.
func (r *SQLiteRecorder) RecordScan(ctx context.Context, res *model.ScanResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := NewScanRecord(res)
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO scan_runs
		(id, started_at, finished_at, window_from, window_to, scanned, skipped, matches, outcome)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.StartedAt.Unix(), rec.FinishedAt.Unix(), rec.WindowFrom, rec.WindowTo,
		rec.Scanned, rec.Skipped, len(rec.Matches), rec.Outcome,
	)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}

	for _, m := range rec.Matches {
		_, err := tx.ExecContext(ctx, `INSERT INTO scan_matches
			(scan_id, ticker, cross_date, last_close, ema, sma)
			VALUES (?,?,?,?,?,?)`,
			rec.ID, m.Ticker, m.CrossDate, m.LastClose, m.EMA, m.SMA,
		)
		if err != nil {
			return fmt.Errorf("insert match %s: %w", m.Ticker, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
