package genconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfigStdout(t *testing.T) {
	cmd := NewCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	content := out.String()
	assert.Contains(t, content, "[packages]")
	assert.Contains(t, content, "[shell]")
	// Values are commented out so the file documents without overriding
	assert.NotContains(t, content, "\nformulae =")
}

func TestGenConfigWrite(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("DOTUP_CONFIG_DIR", configDir)

	cmd := NewCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--write"})

	err := cmd.Execute()
	require.NoError(t, err)

	target := filepath.Join(configDir, "dotup.toml")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[dotfiles]")
}

func TestGenConfigWriteRefusesOverwrite(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("DOTUP_CONFIG_DIR", configDir)

	target := filepath.Join(configDir, "dotup.toml")
	require.NoError(t, os.WriteFile(target, []byte("# mine\n"), 0o644))

	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--write"})

	err := cmd.Execute()
	require.Error(t, err)

	data, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "# mine\n", string(data))
}
