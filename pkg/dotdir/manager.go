// Package dotdir manages the .arenito/ and ~/.arenito directories.
//
// The directory holds config.toml, credentials.toml and the chat client's
// saved transcript.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Name is the directory name used both in the working directory and in $HOME.
const Name = ".arenito"

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// LocalDir is ./.arenito/ under the current working directory, whether or
// not it exists yet.
func LocalDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return filepath.Join(cwd, Name), nil
}

// HomeDir is ~/.arenito/.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, Name), nil
}

// Target returns the absolute .arenito/ directory to use, creating it when
// missing. An overrideDir wins; otherwise an existing ./.arenito/ is used
// before ~/.arenito/.
func (m *Manager) Target(overrideDir string) (string, error) {
	dir, err := resolve(overrideDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating arenito directory %s: %w", dir, err)
	}
	return filepath.Abs(dir)
}

func resolve(overrideDir string) (string, error) {
	if overrideDir != "" {
		return overrideDir, nil
	}

	local, err := LocalDir()
	if err == nil {
		if info, statErr := os.Stat(local); statErr == nil && info.IsDir() {
			return local, nil
		}
	}
	return HomeDir()
}
