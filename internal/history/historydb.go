package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/doclink/doclink/internal/model"
)

// dbFileName is the SQLite database file name inside the data directory.
const dbFileName = "doclink.db"

// DB provides SQLite-based storage for check reports.
// It manages connection pooling and provides methods for saving and
// querying historical runs.
type DB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a history database in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY without a retry loop.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &DB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *DB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the underlying database file.
func (hdb *DB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *DB) createTables() error {
	schema := `
	-- Check reports store complete run results as JSON
	CREATE TABLE IF NOT EXISTS check_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL,
		violation_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_reports_root ON check_reports(root);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON check_reports(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// CheckMeta contains queryable metadata about a stored check run.
type CheckMeta struct {
	// ID is the database row id, usable with GetCheckReportByID.
	ID int64

	// Root is the documentation root the run checked.
	Root string

	// Timestamp is when the run was stored.
	Timestamp time.Time

	// ViolationCount is the number of violations the run found.
	ViolationCount int
}

// SaveCheckReport stores a check report and returns its row id.
func (hdb *DB) SaveCheckReport(ctx context.Context, report *model.CheckReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	result, err := hdb.db.ExecContext(ctx,
		`INSERT INTO check_reports (root, report_json, violation_count) VALUES (?, ?, ?)`,
		report.Root,
		string(reportJSON),
		report.ViolationCount(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert check report: %w", err)
	}

	return result.LastInsertId()
}

// GetCheckHistory returns all stored reports for a root, newest first.
func (hdb *DB) GetCheckHistory(ctx context.Context, root string) ([]*model.CheckReport, error) {
	// id breaks ties: CURRENT_TIMESTAMP has one-second resolution and
	// CI can easily store two runs within it.
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT report_json FROM check_reports WHERE root = ? ORDER BY timestamp DESC, id DESC`,
		root,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query check history: %w", err)
	}
	defer rows.Close()

	var reports []*model.CheckReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan check report: %w", err)
		}

		var report model.CheckReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return nil, fmt.Errorf("failed to deserialize check report: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// GetCheckHistoryWithMetadata returns run metadata for a root, newest first.
// This is cheaper than GetCheckHistory when only the listing is needed.
func (hdb *DB) GetCheckHistoryWithMetadata(ctx context.Context, root string) ([]CheckMeta, error) {
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT id, root, timestamp, violation_count FROM check_reports WHERE root = ? ORDER BY timestamp DESC, id DESC`,
		root,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query check history: %w", err)
	}
	defer rows.Close()

	var metas []CheckMeta
	for rows.Next() {
		var m CheckMeta
		if err := rows.Scan(&m.ID, &m.Root, &m.Timestamp, &m.ViolationCount); err != nil {
			return nil, fmt.Errorf("failed to scan check metadata: %w", err)
		}
		metas = append(metas, m)
	}

	return metas, rows.Err()
}

// GetCheckReportByID returns a single stored report, or nil if no row with
// that id exists.
func (hdb *DB) GetCheckReportByID(ctx context.Context, id int64) (*model.CheckReport, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx,
		`SELECT report_json FROM check_reports WHERE id = ?`,
		id,
	).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query check report %d: %w", id, err)
	}

	var report model.CheckReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to deserialize check report: %w", err)
	}
	return &report, nil
}

// ListCheckedRoots returns every distinct documentation root that has at
// least one stored run, in lexical order.
func (hdb *DB) ListCheckedRoots(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT DISTINCT root FROM check_reports ORDER BY root`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query checked roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		roots = append(roots, root)
	}

	return roots, rows.Err()
}
