// Package dotfiles manages a version-controlled configuration tree
// overlaid onto the home directory. The repository metadata lives in a
// bare directory outside the home; every git invocation is
// parameterized with --git-dir and --work-tree so the home directory
// itself never becomes a repository root.
package dotfiles

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/logging"
)

// conflictMarker is the git phrase for an untracked file that checkout
// would overwrite
const conflictMarker = "would be overwritten by checkout"

// Manager operates on the dotfiles overlay
type Manager struct {
	// GitDir is the bare repository directory, outside the work tree
	GitDir string

	// WorkTree is where tracked files materialize, always the home dir
	WorkTree string

	// Remote is the clone URL
	Remote string

	// Branch is the branch checked out onto the work tree
	Branch string

	runner host.Runner
	fs     host.FS
	logger zerolog.Logger
}

// New creates a Manager for the given overlay layout
func New(runner host.Runner, fs host.FS, gitDir, workTree, remote, branch string) *Manager {
	return &Manager{
		GitDir:   gitDir,
		WorkTree: workTree,
		Remote:   remote,
		Branch:   branch,
		runner:   runner,
		fs:       fs,
		logger:   logging.GetLogger("dotfiles"),
	}
}

// Cloned reports whether the bare repository already exists
func (m *Manager) Cloned() bool {
	info, err := m.fs.Stat(m.GitDir)
	return err == nil && info.IsDir()
}

// Clone creates the bare repository. When the bare directory already
// exists the machine is treated as already bootstrapped and the call is
// a no-op.
func (m *Manager) Clone(ctx context.Context) error {
	if m.Cloned() {
		m.logger.Debug().Str("gitDir", m.GitDir).Msg("bare repository exists, skipping clone")
		return nil
	}

	if m.Remote == "" {
		return errors.New(errors.ErrConfigValid, "dotfiles.remote is not configured")
	}

	m.logger.Info().Str("remote", m.Remote).Str("gitDir", m.GitDir).Msg("Cloning dotfiles")
	result, err := m.runner.Run(ctx, "git", "clone", "--bare", m.Remote, m.GitDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCloneFailed, "failed to clone %s", m.Remote).
			WithDetail("stderr", result.Stderr)
	}
	return nil
}

// Checkout materializes the branch onto the work tree. A file already
// present in the work tree that the branch also tracks makes git refuse
// the checkout; that surfaces as CHECKOUT_CONFLICT and the pre-existing
// file is left untouched.
func (m *Manager) Checkout(ctx context.Context, branch string) error {
	if branch == "" {
		branch = m.Branch
	}

	result, err := m.runner.Run(ctx, "git", m.gitArgs("checkout", branch)...)
	if err != nil {
		if strings.Contains(result.Stderr, conflictMarker) {
			return errors.Newf(errors.ErrCheckoutConflict,
				"checkout of %q blocked by pre-existing files:\n%s", branch, conflictingPaths(result.Stderr))
		}
		return errors.Wrapf(err, errors.ErrCheckoutFailed, "failed to check out %q", branch).
			WithDetail("stderr", result.Stderr)
	}
	return nil
}

// HideUntracked stops status output from listing every foreign file in
// the home directory as untracked
func (m *Manager) HideUntracked(ctx context.Context) error {
	_, err := m.runner.Run(ctx, "git", m.gitArgs("config", "status.showUntrackedFiles", "no")...)
	if err != nil {
		return errors.Wrap(err, errors.ErrCheckoutFailed, "failed to set status.showUntrackedFiles")
	}
	return nil
}

// Passthrough forwards arbitrary arguments to git with the overlay's
// --git-dir and --work-tree pre-filled, argument order preserved
// verbatim. Stdio is attached so interactive subcommands work.
func (m *Manager) Passthrough(ctx context.Context, args ...string) error {
	return m.runner.RunInteractive(ctx, "git", m.gitArgs(args...)...)
}

// gitArgs prepends the overlay parameters to a git argument list
func (m *Manager) gitArgs(args ...string) []string {
	full := make([]string, 0, len(args)+2)
	full = append(full, "--git-dir="+m.GitDir, "--work-tree="+m.WorkTree)
	return append(full, args...)
}

// conflictingPaths extracts the indented path lines from git's
// overwrite refusal message
func conflictingPaths(stderr string) string {
	var paths []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ") {
			paths = append(paths, strings.TrimSpace(line))
		}
	}
	if len(paths) == 0 {
		return strings.TrimSpace(stderr)
	}
	return strings.Join(paths, "\n")
}
