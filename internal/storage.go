package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// SessionsKey is the storage key holding the saved session array
const SessionsKey = "osaSessions"

// SessionStore persists the saved session list as a whole
type SessionStore interface {
	LoadSessions() ([]Session, error)
	SaveSessions(sessions []Session) error
	Close() error
}

// Storage keeps the session array as one JSON value in monitorKV
type Storage struct {
	db   *sql.DB
	path string
}

// NewStorage creates a new Storage instance
func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db, path: "monitorKV"}
}

// OpenStorage opens the SQLite database at path and wraps it
func OpenStorage(path string) (*Storage, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return &Storage{db: db, path: path}, nil
}

// LoadSessions reads the saved sessions. A missing key is an empty list.
func (s *Storage) LoadSessions() ([]Session, error) {
	value, ok, err := GetValue(s.db, SessionsKey)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	if !ok || value == "" {
		return []Session{}, nil
	}

	var sessions []Session
	if err := json.Unmarshal([]byte(value), &sessions); err != nil {
		return nil, &ParseError{Source: "storage", Key: SessionsKey, Err: err}
	}
	return sessions, nil
}

// SaveSessions replaces the stored session array
func (s *Storage) SaveSessions(sessions []Session) error {
	if sessions == nil {
		sessions = []Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	if err := PutValue(s.db, SessionsKey, string(data)); err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// OpenSessionStore opens the backend selected in cfg
func OpenSessionStore(cfg Config, paths DataPaths) (SessionStore, error) {
	switch cfg.Storage {
	case StorageSQLite, "":
		if err := paths.EnsureDataDir(); err != nil {
			return nil, &StorageError{Path: paths.DataDir, Op: "open", Err: err}
		}
		return OpenStorage(paths.Database)
	case StorageFile:
		return NewFileStore(paths.SessionsFile), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage)
	}
}
