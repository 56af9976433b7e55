package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skilldock-labs/skilldock/internal/branding"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// UserHome returns the directory treated as the user's home for
// global-scope installs. It checks the SKILLDOCK_USER_HOME environment
// variable first, then falls back to the OS home directory.
func UserHome() (string, error) {
	if v := os.Getenv(branding.EnvVar("USER_HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// ConfigDir returns the path to the skilldock config directory (~/.skilldock).
func ConfigDir() (string, error) {
	home, err := UserHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, branding.HomeDir()), nil
}
