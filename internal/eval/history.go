// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// History records completed harness runs in SQLite so results can be
// compared across runs without re-reading old TSV files.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the run-history database at path,
// creating the schema if needed.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	h := &History{db: db}
	if err := h.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return h, nil
}

// Close releases the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			runs_per_config INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			config TEXT NOT NULL,
			catalogue TEXT NOT NULL,
			groups_included TEXT NOT NULL,
			accuracy REAL NOT NULL,
			within_1_acc REAL NOT NULL,
			macro_recall REAL NOT NULL,
			mae_bins REAL NOT NULL,
			mae_months REAL NOT NULL,
			PRIMARY KEY (run_id, config)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_config ON results(config)`,
	}
	for _, stmt := range statements {
		if _, err := h.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores one completed harness run and its rows, returning
// the new run's id.
func (h *History) RecordRun(ctx context.Context, startedAt time.Time, runsPerConfig int, rows []Row) (int64, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting history transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, runs_per_config) VALUES (?, ?)`,
		startedAt.UTC().Format(time.RFC3339), runsPerConfig)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO results
				(run_id, config, catalogue, groups_included,
				 accuracy, within_1_acc, macro_recall, mae_bins, mae_months)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID,
			row.Experiment.Name,
			string(row.Experiment.Catalogue),
			strings.Join(row.Experiment.Groups.Sorted(), ","),
			row.Metrics.Accuracy,
			row.Metrics.Within1Accuracy,
			row.Metrics.MacroRecall,
			row.Metrics.MAEBuckets,
			row.Metrics.MAEMonths)
		if err != nil {
			return 0, fmt.Errorf("recording result %s: %w", row.Experiment.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing history transaction: %w", err)
	}
	return runID, nil
}

// ConfigResult is one stored result for a configuration, with the run
// it came from.
type ConfigResult struct {
	RunID     int64
	StartedAt time.Time
	Accuracy  float64
	MAEBins   float64
}

// ConfigHistory returns the stored results for one configuration name,
// oldest first.
func (h *History) ConfigHistory(ctx context.Context, config string) ([]ConfigResult, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT r.run_id, runs.started_at, r.accuracy, r.mae_bins
		 FROM results r JOIN runs ON runs.id = r.run_id
		 WHERE r.config = ?
		 ORDER BY r.run_id`, config)
	if err != nil {
		return nil, fmt.Errorf("querying history for %s: %w", config, err)
	}
	defer rows.Close()

	var out []ConfigResult
	for rows.Next() {
		var cr ConfigResult
		var started string
		if err := rows.Scan(&cr.RunID, &started, &cr.Accuracy, &cr.MAEBins); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			cr.StartedAt = t
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}
