// Package store provides the embedded SQLite store for the work tracker.
//
// The database runs in embedded mode using ncruces/go-sqlite3 with WAL for
// concurrency support. The store is safe for concurrent use by the sync
// engine, the scheduler jobs, and user-facing mutations: every exported
// operation is a single statement or a single transaction.
//
// Schema:
//   - One table per entity kind (work_activity_logs, operator_info,
//     activity_categories, the_boys_info, production_activities,
//     component_info), each with a last_modified epoch-millis column.
//   - work_activity_components junction table for the many-to-many
//     log/component association.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Store wraps the SQLite connection with work-tracker specific operations.
type Store struct {
	conn *sql.DB
	path string
}

// Open creates a database connection at the specified path.
//
// The database is opened in embedded mode with WAL for concurrent reads.
// If the database doesn't exist, it is created; call InitSchema afterwards.
// The caller MUST call Close() when done.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{conn: conn, path: path}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := s.conn.Exec(pragma); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return s, nil
}

// RawDB returns the underlying sql.DB connection.
func (s *Store) RawDB() *sql.DB {
	return s.conn
}

// Close closes the database connection after a WAL checkpoint.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.conn = nil
	return nil
}

// InitSchema creates the schema if it doesn't exist. Idempotent.
func (s *Store) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS work_activity_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category_name TEXT NOT NULL,
		category_id INTEGER,
		start_time INTEGER NOT NULL,
		end_time INTEGER,
		duration INTEGER,
		operator_id INTEGER,
		expenses REAL,
		log_date INTEGER NOT NULL DEFAULT 0,
		task_successful INTEGER,
		assigned_by TEXT,
		last_modified INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS operator_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		hourly_salary REAL NOT NULL DEFAULT 0,
		role TEXT NOT NULL DEFAULT '',
		priority INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		notes_for_ai TEXT NOT NULL DEFAULT '',
		last_modified INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS activity_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		last_modified INTEGER NOT NULL DEFAULT 0
	);

	-- id is user-supplied, not auto-increment
	CREATE TABLE IF NOT EXISTS the_boys_info (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		notes_for_ai TEXT NOT NULL DEFAULT '',
		last_modified INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS production_activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		boy_id INTEGER,
		component_name TEXT NOT NULL,
		machine_number INTEGER NOT NULL DEFAULT 0,
		production_quantity INTEGER NOT NULL DEFAULT 0,
		rejection_quantity INTEGER,
		start_time INTEGER NOT NULL DEFAULT 0,
		end_time INTEGER NOT NULL DEFAULT 0,
		duration INTEGER NOT NULL DEFAULT 0,
		downtime_minutes INTEGER,
		last_modified INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS component_info (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		customer TEXT NOT NULL DEFAULT '',
		priority_level INTEGER NOT NULL DEFAULT 0,
		cycle_time_minutes REAL NOT NULL DEFAULT 0,
		notes_for_ai TEXT NOT NULL DEFAULT '',
		last_modified INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS work_activity_components (
		work_activity_id INTEGER NOT NULL,
		component_id INTEGER NOT NULL,
		PRIMARY KEY (work_activity_id, component_id)
	);

	CREATE INDEX IF NOT EXISTS idx_logs_log_date ON work_activity_logs(log_date);
	CREATE INDEX IF NOT EXISTS idx_logs_category ON work_activity_logs(category_id);
	CREATE INDEX IF NOT EXISTS idx_prod_boy ON production_activities(boy_id);
	CREATE INDEX IF NOT EXISTS idx_links_component ON work_activity_components(component_id);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// syncedTables lists every table the sync engine reads or writes,
// junction table last so a wipe never orphans links.
var syncedTables = []string{
	"work_activity_logs",
	"operator_info",
	"activity_categories",
	"the_boys_info",
	"production_activities",
	"component_info",
	"work_activity_components",
}

// i64PtrToNull converts an int64 pointer to a nullable SQL value.
func i64PtrToNull(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullToI64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func f64PtrToNull(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullToF64Ptr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func strPtrToNull(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullToStrPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

// Booleans are stored as 0/1 integers; NULL keeps "unknown" distinct.
func boolPtrToNull(v *bool) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	n := sql.NullInt64{Valid: true}
	if *v {
		n.Int64 = 1
	}
	return n
}

func nullToBoolPtr(n sql.NullInt64) *bool {
	if !n.Valid {
		return nil
	}
	v := n.Int64 != 0
	return &v
}
