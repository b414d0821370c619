package shell_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dotuperr "github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/paths"
	"github.com/arthur-debert/dotup/pkg/shell"
	"github.com/arthur-debert/dotup/pkg/testutil"
)

func newIntegration(t *testing.T, runner *testutil.FakeRunner, memfs *testutil.MemoryFS) *shell.Integration {
	t.Helper()
	p := paths.NewWithHome("/home/alice")
	return shell.NewIntegration(runner, memfs, p)
}

func TestWriteEnvSnippetOverwrites(t *testing.T) {
	memfs := testutil.NewMemoryFS()
	integ := newIntegration(t, testutil.NewFakeRunner(), memfs)

	require.NoError(t, integ.WriteEnvSnippet(shell.HomebrewOverrides("/opt/homebrew")))
	require.NoError(t, integ.WriteEnvSnippet(shell.HomebrewOverrides("/usr/local")))

	content, err := memfs.ReadFile(integ.Paths.EnvSnippetPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "/usr/local")
	assert.NotContains(t, string(content), "/opt/homebrew", "snippet is fully regenerated, not appended")
}

func TestEnsureProfileLineIdempotent(t *testing.T) {
	memfs := testutil.NewMemoryFS()
	integ := newIntegration(t, testutil.NewFakeRunner(), memfs)
	profile := "/home/alice/.zshrc"

	added, err := integ.EnsureProfileLine(profile)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = integ.EnsureProfileLine(profile)
	require.NoError(t, err)
	assert.False(t, added)

	content, err := memfs.ReadFile(profile)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), integ.ProfileLine()))
}

func TestWritePromptInit(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Respond("starship init zsh", testutil.FakeResponse{Stdout: "eval_starship_stub\n"})
	memfs := testutil.NewMemoryFS()
	integ := newIntegration(t, runner, memfs)

	path, err := integ.WritePromptInit(context.Background(), "starship", "zsh")
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Contains(t, path, "starship-init.zsh")

	content, err := memfs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "eval_starship_stub\n", string(content))
}

func TestWritePromptInitDisabled(t *testing.T) {
	integ := newIntegration(t, testutil.NewFakeRunner(), testutil.NewMemoryFS())

	path, err := integ.WritePromptInit(context.Background(), "", "zsh")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestWritePromptInitMissingTool(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.MarkMissing("starship")
	integ := newIntegration(t, runner, testutil.NewMemoryFS())

	_, err := integ.WritePromptInit(context.Background(), "starship", "zsh")
	require.Error(t, err)
	assert.True(t, dotuperr.IsErrorCode(err, dotuperr.ErrToolNotFound))
}
