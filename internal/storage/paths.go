// Package storage persists protocol sessions and game statistics in BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessdriver"

// userDataBase is the per-user directory applications keep data under:
// Application Support on macOS, APPDATA on Windows, XDG_DATA_HOME
// (default ~/.local/share) elsewhere.
func userDataBase() (string, error) {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
	} else if runtime.GOOS != "darwin" {
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Roaming"), nil
	default:
		return filepath.Join(home, ".local", "share"), nil
	}
}

// GetDataDir returns the chessdriver data directory, creating it if needed.
func GetDataDir() (string, error) {
	base, err := userDataBase()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the badger directory inside the data directory.
func GetDatabaseDir() (string, error) {
	data, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(data, "db"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
