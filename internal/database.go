package internal

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens (creating if needed) the monitor's SQLite key/value store
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers and keeps ":memory:" databases
	// from splitting across the pool.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the monitorKV table
func EnsureSchema(db *sql.DB) error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS monitorKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create monitorKV table: %w", err)
	}
	return nil
}

// GetValue reads a key from monitorKV. ok is false when the key is absent.
func GetValue(db *sql.DB, key string) (value string, ok bool, err error) {
	var v sql.NullString
	err = db.QueryRow("SELECT value FROM monitorKV WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query failed: %w", err)
	}
	return v.String, v.Valid, nil
}

// PutValue upserts a key in monitorKV
func PutValue(db *sql.DB, key, value string) error {
	_, err := db.Exec(
		"INSERT INTO monitorKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// QueryMonitorKV queries the monitorKV table with a LIKE pattern
func QueryMonitorKV(db *sql.DB, pattern string) ([]KeyValuePair, error) {
	query := "SELECT key, value FROM monitorKV WHERE key LIKE ? AND value IS NOT NULL"
	rows, err := db.Query(query, pattern)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var pairs []KeyValuePair
	for rows.Next() {
		var pair KeyValuePair
		var value sql.NullString
		if err := rows.Scan(&pair.Key, &value); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if value.Valid {
			pair.Value = value.String
			pairs = append(pairs, pair)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pairs, nil
}

// KeyValuePair represents a key-value pair from monitorKV
type KeyValuePair struct {
	Key   string
	Value string
}
