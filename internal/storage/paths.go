// Package storage persists user preferences and lifetime statistics.
// Game state is never stored.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "chess3d"

// DataDir returns the application data directory, creating it if needed.
// An empty override selects $XDG_DATA_HOME/chess3d (or the platform
// equivalent).
func DataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, appName)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// DatabaseDir returns the directory holding the BadgerDB files.
func DatabaseDir(override string) (string, error) {
	dataDir, err := DataDir(override)
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", fmt.Errorf("create db dir: %w", err)
	}
	return dbDir, nil
}
