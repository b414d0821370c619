// Package paths provides centralized path handling for dotup.
// It implements XDG Base Directory compliance and resolves the handful
// of well-known locations the bootstrap touches.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotup/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotup
	EnvConfigDir = "DOTUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for dotup
	EnvStateDir = "DOTUP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DotupDirName is the directory name for dotup-specific files
	DotupDirName = "dotup"

	// DefaultBareDirName is the default directory name for the dotfiles
	// bare repository, relative to the home directory
	DefaultBareDirName = "dotfiles"

	// ShellDir is the subdirectory for generated shell scripts
	ShellDir = "shell"

	// EnvSnippetName is the generated environment snippet file
	EnvSnippetName = "dotup-env.sh"

	// LockFileName is the run lock file
	LockFileName = "dotup.lock"

	// ShellRegistryFile is the system login-shell registry
	ShellRegistryFile = "/etc/shells"
)

// Paths resolves the locations dotup reads and writes
type Paths struct {
	home      string
	configDir string
	stateDir  string
	dataDir   string
}

// New creates a Paths instance anchored at the current user's home
func New() (*Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}
	return NewWithHome(home), nil
}

// NewWithHome creates a Paths instance for an explicit home directory.
// Useful for tests that build a synthetic home.
func NewWithHome(home string) *Paths {
	p := &Paths{home: home}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, DotupDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, DotupDirName)
	}

	p.dataDir = filepath.Join(xdg.DataHome, DotupDirName)

	return p
}

// Home returns the user's home directory
func (p *Paths) Home() string {
	return p.home
}

// ConfigDir returns the dotup config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the dotup state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// DataDir returns the dotup data directory
func (p *Paths) DataDir() string {
	return p.dataDir
}

// ShellScriptsDir returns the directory generated shell scripts are
// written to
func (p *Paths) ShellScriptsDir() string {
	return filepath.Join(p.dataDir, ShellDir)
}

// EnvSnippetPath returns the path of the generated environment snippet
func (p *Paths) EnvSnippetPath() string {
	return filepath.Join(p.ShellScriptsDir(), EnvSnippetName)
}

// LockFile returns the run lock file path
func (p *Paths) LockFile() string {
	return filepath.Join(p.stateDir, LockFileName)
}

// DefaultBareDir returns the default dotfiles bare repository location
func (p *Paths) DefaultBareDir() string {
	return filepath.Join(p.home, DefaultBareDirName)
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable. If both fail, it returns an error rather than using dangerous
// defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess, "unable to determine home directory: neither os.UserHomeDir() nor HOME are available")
}

// ExpandHome expands a leading ~ to the given home directory
func ExpandHome(path, home string) (string, error) {
	if path == "~" {
		return home, nil
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		if home == "" {
			return "", fmt.Errorf("cannot expand ~: home directory unknown")
		}
		return filepath.Join(home, path[2:]), nil
	}

	return path, nil
}
