package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the config file looked up when --config is not given.
const DefaultFileName = "keygen.yaml"

// ConfigDir returns the path to the keygen config directory (~/.keygen).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".keygen"), nil
}

// DefaultPath returns ~/.keygen/keygen.yaml. The file may not exist.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}
