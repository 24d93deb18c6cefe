package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"craftboard/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps the local SQLite database. It backs the price history store
// and the persisted settings; everything in it is a weak cache. Losing
// the file degrades trend display, never correctness of current data.
type DB struct {
	sql *sql.DB
}

// DefaultPath returns the database location. Working directory is
// preferred so the file stays stable across go run / go build; deployed
// builds fall back to the executable directory.
func DefaultPath() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "craftboard.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "craftboard.db")
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS settings (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS price_history (
				item_id TEXT    NOT NULL,
				ts      INTEGER NOT NULL,
				price   REAL    NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_price_history_item_ts ON price_history(item_id, ts);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	return nil
}
