package brew_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotup/pkg/brew"
	dotuperr "github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/testutil"
)

func TestAvailable(t *testing.T) {
	runner := testutil.NewFakeRunner()
	b := brew.New(runner)
	assert.True(t, b.Available())

	runner.MarkMissing("brew")
	assert.False(t, b.Available())
}

func TestEnsureInstalledSkipsWhenPresent(t *testing.T) {
	runner := testutil.NewFakeRunner()
	b := brew.New(runner)

	require.NoError(t, b.EnsureInstalled(context.Background()))
	assert.Empty(t, runner.Calls(), "no command when brew already present")
}

func TestEnsureInstalledRunsScriptWhenMissing(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.MarkMissing("brew")
	b := brew.New(runner)

	// The install script fails; the error must carry TOOL_NOT_FOUND.
	runner.Respond("/bin/bash -c curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh | /bin/bash",
		testutil.FakeResponse{Err: errors.New("exit status 1")})

	err := b.EnsureInstalled(context.Background())
	require.Error(t, err)
	assert.True(t, dotuperr.IsErrorCode(err, dotuperr.ErrToolNotFound))
}

func TestInstalledFormulae(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Respond("brew list --formula", testutil.FakeResponse{Stdout: "wget\nripgrep\n"})
	b := brew.New(runner)

	installed, err := b.InstalledFormulae(context.Background())
	require.NoError(t, err)
	assert.True(t, installed["wget"])
	assert.True(t, installed["ripgrep"])
	assert.False(t, installed["fzf"])
}

func TestInstallFormula(t *testing.T) {
	runner := testutil.NewFakeRunner()
	b := brew.New(runner)

	require.NoError(t, b.InstallFormula(context.Background(), "wget"))
	assert.True(t, runner.Called("brew install wget"))
}

func TestInstallCask(t *testing.T) {
	runner := testutil.NewFakeRunner()
	b := brew.New(runner)

	require.NoError(t, b.InstallCask(context.Background(), "font-hack-nerd-font"))
	assert.True(t, runner.Called("brew install --cask font-hack-nerd-font"))
}

func TestInstallFormulaFailureCode(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Respond("brew install wget", testutil.FakeResponse{ExitCode: 1, Err: errors.New("exit status 1")})
	b := brew.New(runner)

	err := b.InstallFormula(context.Background(), "wget")
	require.Error(t, err)
	assert.True(t, dotuperr.IsErrorCode(err, dotuperr.ErrInstallFailed))
}

func TestDisableAnalytics(t *testing.T) {
	runner := testutil.NewFakeRunner()
	b := brew.New(runner)

	require.NoError(t, b.DisableAnalytics(context.Background()))
	assert.Equal(t, []string{"brew analytics off"}, runner.Calls())
}
