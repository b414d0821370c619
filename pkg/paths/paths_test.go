package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithHome(t *testing.T) {
	p := NewWithHome("/home/alice")

	assert.Equal(t, "/home/alice", p.Home())
	assert.Equal(t, filepath.Join("/home/alice", "dotfiles"), p.DefaultBareDir())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigDir, "/custom/config")
	t.Setenv(EnvStateDir, "/custom/state")

	p := NewWithHome("/home/alice")

	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, "/custom/state", p.StateDir())
	assert.Equal(t, filepath.Join("/custom/state", LockFileName), p.LockFile())
}

func TestShellScriptPaths(t *testing.T) {
	p := NewWithHome("/home/alice")

	assert.Equal(t, filepath.Join(p.DataDir(), ShellDir), p.ShellScriptsDir())
	assert.Equal(t, filepath.Join(p.ShellScriptsDir(), EnvSnippetName), p.EnvSnippetPath())
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"bare_tilde", "~", "/home/alice"},
		{"tilde_slash", "~/dotfiles", "/home/alice/dotfiles"},
		{"absolute_untouched", "/opt/homebrew", "/opt/homebrew"},
		{"relative_untouched", "dotfiles", "dotfiles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.path, "/home/alice")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExpandHomeNoHome(t *testing.T) {
	_, err := ExpandHome("~/x", "")
	assert.Error(t, err)
}
