package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the session array in a single JSON file
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed session store
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the sessions file path
func (fs *FileStore) Path() string {
	return fs.path
}

// EnsureDir ensures the directory holding the sessions file exists
func (fs *FileStore) EnsureDir() error {
	return os.MkdirAll(filepath.Dir(fs.path), 0755)
}

// LoadSessions reads the sessions file. A missing file is an empty list.
func (fs *FileStore) LoadSessions() ([]Session, error) {
	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Session{}, nil
	}
	if err != nil {
		return nil, &StorageError{Path: fs.path, Op: "read", Err: err}
	}

	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, &ParseError{Source: "storage", Key: fs.path, Err: err}
	}
	if sessions == nil {
		sessions = []Session{}
	}
	return sessions, nil
}

// SaveSessions writes the whole array through a temp file and rename
func (fs *FileStore) SaveSessions(sessions []Session) error {
	if err := fs.EnsureDir(); err != nil {
		return &StorageError{Path: fs.path, Op: "write", Err: err}
	}
	if sessions == nil {
		sessions = []Session{}
	}

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &StorageError{Path: tmp, Op: "write", Err: err}
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Path: fs.path, Op: "write", Err: err}
	}
	return nil
}

// Clear removes the sessions file
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op; the file is not held open
func (fs *FileStore) Close() error {
	return nil
}
