package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// SampleSessionsJSON is a persisted session array with two entries
const SampleSessionsJSON = `[
  {
    "id": "1760000000000",
    "name": "Morning run",
    "timestamp": "2025-10-09T08:53:20.000Z",
    "logs": [
      {"id": "1760000000000-a1b2c3d4", "category": "system", "message": "Connected to OSA", "timestamp": "2025-10-09T08:53:20Z"},
      {"id": "1760000000001-e5f6a7b8", "category": "thinking", "message": "Analyzing user goal", "timestamp": "2025-10-09T08:53:21Z", "metadata": {"depth": 1}}
    ],
    "metrics": {"thoughts": 4, "chains": 1, "contexts": 2, "blockers": 0, "patterns": 1, "efficiency": 12.5}
  },
  {
    "id": "1760000300000",
    "name": "Autosave 09:00:00",
    "timestamp": "2025-10-09T08:58:20.000Z",
    "logs": [
      {"id": "1760000300000-c9d0e1f2", "category": "blocker", "message": "Database connection timeout", "timestamp": "2025-10-09T08:58:20Z"}
    ],
    "metrics": {"thoughts": 9, "chains": 2, "contexts": 5, "blockers": 1, "patterns": 1, "efficiency": 20}
  }
]`

// CreateSQLiteFixture creates a SQLite database file holding SampleSessionsJSON
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS monitorKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	insertSQL := "INSERT INTO monitorKV (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, "osaSessions", SampleSessionsJSON); err != nil {
		t.Fatalf("Failed to insert sessions: %v", err)
	}
}

// CreateSessionsFileFixture writes SampleSessionsJSON to path
func CreateSessionsFileFixture(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(SampleSessionsJSON), 0644); err != nil {
		t.Fatalf("Failed to write sessions file: %v", err)
	}
}
