package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotup/pkg/paths"
)

func testPaths(t *testing.T) (*paths.Paths, string) {
	t.Helper()

	home := t.TempDir()
	configDir := filepath.Join(home, ".config", "dotup")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	t.Setenv(paths.EnvConfigDir, configDir)

	// Keep the working-directory layer out of these tests.
	emptyCwd := t.TempDir()
	require.NoError(t, os.Chdir(emptyCwd))

	return paths.NewWithHome(home), configDir
}

func TestLoadDefaultsOnly(t *testing.T) {
	p, _ := testPaths(t)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.False(t, cfg.Lenient)
	assert.Empty(t, cfg.Packages.Formulae)
	assert.Equal(t, "main", cfg.Dotfiles.Branch)
	assert.Equal(t, filepath.Join(p.Home(), "dotfiles"), cfg.Dotfiles.BareDir, "bare_dir ~ must expand to home")
	assert.Equal(t, "/opt/homebrew/bin/zsh", cfg.Shell.Path)
	assert.Equal(t, filepath.Join(p.Home(), ".zshrc"), cfg.Shell.Profile)
	assert.Equal(t, "starship", cfg.Shell.Prompt)
	assert.Equal(t, "/opt/homebrew", cfg.Homebrew.Prefix)
}

func TestLoadUserTOMLOverridesDefaults(t *testing.T) {
	p, configDir := testPaths(t)

	userConfig := `
lenient = true

[packages]
formulae = ["wget", "ripgrep"]
casks = ["font-hack-nerd-font"]

[[appstore.apps]]
id = 497799835
name = "Xcode"

[dotfiles]
remote = "git@example.com:alice/dotfiles.git"
branch = "mac"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "dotup.toml"), []byte(userConfig), 0644))

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.True(t, cfg.Lenient)
	assert.Equal(t, []string{"wget", "ripgrep"}, cfg.Packages.Formulae)
	assert.Equal(t, []string{"font-hack-nerd-font"}, cfg.Packages.Casks)
	require.Len(t, cfg.AppStore.Apps, 1)
	assert.Equal(t, int64(497799835), cfg.AppStore.Apps[0].ID)
	assert.Equal(t, "Xcode", cfg.AppStore.Apps[0].Name)
	assert.Equal(t, "git@example.com:alice/dotfiles.git", cfg.Dotfiles.Remote)
	assert.Equal(t, "mac", cfg.Dotfiles.Branch)

	// Untouched keys keep their defaults.
	assert.Equal(t, "/opt/homebrew/bin/zsh", cfg.Shell.Path)
}

func TestLoadUserYAML(t *testing.T) {
	p, configDir := testPaths(t)

	userConfig := `
packages:
  formulae:
    - fzf
dotfiles:
  remote: https://example.com/dotfiles.git
  bare_dir: ~/src/dotfiles
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "dotup.yaml"), []byte(userConfig), 0644))

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, []string{"fzf"}, cfg.Packages.Formulae)
	assert.Equal(t, filepath.Join(p.Home(), "src", "dotfiles"), cfg.Dotfiles.BareDir)
}

func TestLoadWorkingDirOverridesConfigDir(t *testing.T) {
	p, configDir := testPaths(t)

	require.NoError(t, os.WriteFile(filepath.Join(configDir, "dotup.toml"),
		[]byte("[dotfiles]\nbranch = \"from-config-dir\"\n"), 0644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "dotup.toml"),
		[]byte("[dotfiles]\nbranch = \"from-cwd\"\n"), 0644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-cwd", cfg.Dotfiles.Branch)
}

func TestLoadFileExplicit(t *testing.T) {
	p, _ := testPaths(t)

	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[shell]\npath = \"/bin/zsh\"\n"), 0644))

	cfg, err := LoadFile(p, path)
	require.NoError(t, err)
	assert.Equal(t, "/bin/zsh", cfg.Shell.Path)
}

func TestLoadRejectsEmptyShellPath(t *testing.T) {
	p, configDir := testPaths(t)

	require.NoError(t, os.WriteFile(filepath.Join(configDir, "dotup.toml"),
		[]byte("[shell]\npath = \"\"\n"), 0644))

	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoadBadTOML(t *testing.T) {
	p, _ := testPaths(t)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[packages\nformulae = ["), 0644))

	_, err := LoadFile(p, path)
	assert.Error(t, err)
}

func TestSpecsOrdering(t *testing.T) {
	cfg := &Config{
		Packages: PackagesConfig{
			Formulae: []string{"wget"},
			Casks:    []string{"font-hack-nerd-font"},
		},
		AppStore: AppStoreConfig{
			Apps: []StoreApp{{ID: 497799835, Name: "Xcode"}},
		},
	}

	specs := cfg.Specs()
	require.Len(t, specs, 3)
	assert.Equal(t, PackageSpec{Name: "wget", Kind: KindFormula}, specs[0])
	assert.Equal(t, PackageSpec{Name: "font-hack-nerd-font", Kind: KindCask}, specs[1])
	assert.Equal(t, PackageSpec{Name: "Xcode", Kind: KindStoreApp}, specs[2])
}
