package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultCredentialsFileName is the default name for the credentials file.
	DefaultCredentialsFileName = "credentials.json"

	// MaxAge is how long a stored record stays valid, measured from the
	// file's last-modified time. Older records are discarded and the full
	// authorization flow reruns.
	MaxAge = 24 * time.Hour
)

// ErrNotFound is returned by Load when no record exists or the record is
// older than MaxAge.
var ErrNotFound = errors.New("credentials not found")

// Storage persists credentials to disk. It keeps no in-memory cache: every
// Load re-reads the file so staleness is always measured against wall-clock
// time since the last successful Save.
type Storage struct {
	path string
}

// NewStorage creates credential storage at the specified path. If path is
// empty, uses the default location (~/.config/overtone/credentials.json).
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		path = filepath.Join(configDir, "overtone", DefaultCredentialsFileName)
	}

	return &Storage{path: path}, nil
}

// Save rewrites the record wholesale. Data lands in a temp file that is
// renamed over the record, so a concurrent Load never observes a partial
// write. The file's modified time restarts the staleness clock.
func (s *Storage) Save(creds Credentials) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}

	return nil
}

// Load reads the record from disk. Returns ErrNotFound when no record exists
// or when the record's age meets or exceeds MaxAge.
func (s *Storage) Load() (Credentials, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, fmt.Errorf("failed to stat credentials file: %w", err)
	}

	if time.Since(info.ModTime()) >= MaxAge {
		return Credentials{}, ErrNotFound
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return creds, nil
}

// Delete removes the stored record.
func (s *Storage) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}
	return nil
}

// Exists returns true if a credentials file exists, regardless of age.
func (s *Storage) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the path to the credentials file.
func (s *Storage) Path() string {
	return s.path
}
