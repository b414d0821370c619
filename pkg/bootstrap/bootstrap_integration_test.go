package bootstrap_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotup/pkg/bootstrap"
	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/paths"
	"github.com/arthur-debert/dotup/pkg/testutil"
)

// freshMachineConfig is the minimal end-to-end scenario: one formula,
// nothing else beyond the defaults.
func freshMachineConfig(home string) *config.Config {
	return &config.Config{
		Packages: config.PackagesConfig{Formulae: []string{"wget"}},
		Dotfiles: config.DotfilesConfig{BareDir: filepath.Join(home, "dotfiles"), Branch: "main"},
		Shell: config.ShellConfig{
			Path:    "/opt/homebrew/bin/zsh",
			Profile: filepath.Join(home, ".zshrc"),
			Prompt:  "starship",
		},
		Homebrew: config.HomebrewConfig{Prefix: "/opt/homebrew"},
	}
}

func TestFreshMachineRun(t *testing.T) {
	const home = "/home/alice"
	runner := testutil.NewFakeRunner()
	memfs := testutil.NewMemoryFS()
	t.Setenv(paths.EnvConfigDir, "/home/alice/.config/dotup")
	t.Setenv(paths.EnvStateDir, "/home/alice/.local/state/dotup")
	p := paths.NewWithHome(home)
	cfg := freshMachineConfig(home)

	stages := bootstrap.DefaultStages(runner, memfs, cfg, p)
	seq := bootstrap.NewSequencer(stages...)

	report, err := seq.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Success())

	// All five stages ran to success, none skipped.
	require.Len(t, report.Results, 5)
	for _, res := range report.Results {
		assert.Equal(t, bootstrap.StatusSuccess, res.Status, "stage %s", res.Stage)
	}

	// The package manager was asked to install exactly the one formula.
	assert.True(t, runner.Called("brew install wget"))
	for _, call := range runner.Calls() {
		if strings.HasPrefix(call, "brew install ") {
			assert.Equal(t, "brew install wget", call)
		}
	}

	// The shell was registered and set as default.
	registry, err := memfs.ReadFile("/etc/shells")
	require.NoError(t, err)
	assert.Contains(t, string(registry), "/opt/homebrew/bin/zsh")
	assert.True(t, runner.Called("chsh -s /opt/homebrew/bin/zsh"))

	// The profile got the integration line, the snippet was generated.
	profile, err := memfs.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Contains(t, string(profile), "dotup-env.sh")

	snippet, err := memfs.ReadFile(p.EnvSnippetPath())
	require.NoError(t, err)
	assert.Contains(t, string(snippet), `export HOMEBREW_PREFIX="/opt/homebrew"`)
}

func TestRerunIsIdempotent(t *testing.T) {
	const home = "/home/alice"
	runner := testutil.NewFakeRunner()
	memfs := testutil.NewMemoryFS()
	t.Setenv(paths.EnvConfigDir, "/home/alice/.config/dotup")
	t.Setenv(paths.EnvStateDir, "/home/alice/.local/state/dotup")
	p := paths.NewWithHome(home)
	cfg := freshMachineConfig(home)

	run := func() *bootstrap.Report {
		stages := bootstrap.DefaultStages(runner, memfs, cfg, p)
		report, err := bootstrap.NewSequencer(stages...).Run(context.Background())
		require.NoError(t, err)
		return report
	}

	run()

	// Second run: brew now reports wget installed.
	runner.Respond("brew list --formula", testutil.FakeResponse{Stdout: "wget\n"})
	report := run()
	require.True(t, report.Success())

	// The profile still holds exactly one integration line.
	profile, err := memfs.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	count := strings.Count(string(profile), "dotup-env.sh")
	// The guarded line mentions the snippet twice (test and source).
	assert.Equal(t, 2, count, "profile must not accumulate duplicate lines:\n%s", profile)

	// The registry still lists the shell exactly once.
	registry, err := memfs.ReadFile("/etc/shells")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(registry), "/opt/homebrew/bin/zsh\n"))

	// Only one brew install across both runs.
	installs := 0
	for _, call := range runner.Calls() {
		if call == "brew install wget" {
			installs++
		}
	}
	assert.Equal(t, 1, installs)
}

func TestRunWithDotfiles(t *testing.T) {
	const home = "/home/alice"
	runner := testutil.NewFakeRunner()
	memfs := testutil.NewMemoryFS()
	t.Setenv(paths.EnvConfigDir, "/home/alice/.config/dotup")
	t.Setenv(paths.EnvStateDir, "/home/alice/.local/state/dotup")
	p := paths.NewWithHome(home)
	cfg := freshMachineConfig(home)
	cfg.Dotfiles.Remote = "git@example.com:alice/dotfiles.git"

	stages := bootstrap.DefaultStages(runner, memfs, cfg, p)
	report, err := bootstrap.NewSequencer(stages...).Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Success())

	gitDir := filepath.Join(home, "dotfiles")
	assert.True(t, runner.Called(fmt.Sprintf("git clone --bare git@example.com:alice/dotfiles.git %s", gitDir)))
	assert.True(t, runner.Called(fmt.Sprintf("git --git-dir=%s --work-tree=%s checkout main", gitDir, home)))
	assert.True(t, runner.Called(fmt.Sprintf("git --git-dir=%s --work-tree=%s config status.showUntrackedFiles no", gitDir, home)))
}

func TestRunSkipStage(t *testing.T) {
	const home = "/home/alice"
	runner := testutil.NewFakeRunner()
	memfs := testutil.NewMemoryFS()
	t.Setenv(paths.EnvConfigDir, "/home/alice/.config/dotup")
	t.Setenv(paths.EnvStateDir, "/home/alice/.local/state/dotup")
	p := paths.NewWithHome(home)

	stages := bootstrap.DefaultStages(runner, memfs, freshMachineConfig(home), p)
	seq := bootstrap.NewSequencer(stages...)
	require.NoError(t, seq.Skip(bootstrap.StageShell))

	report, err := seq.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, runner.Called("chsh -s /opt/homebrew/bin/zsh"))
	last := report.Results[len(report.Results)-1]
	assert.Equal(t, bootstrap.StageShell, last.Stage)
	assert.Equal(t, bootstrap.StatusSkipped, last.Status)
}
