// Package brew drives the Homebrew package manager. Homebrew itself
// guarantees install idempotency, but every install is still preceded
// by a listing probe so reruns stay quiet and fast.
package brew

import (
	"bufio"
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/logging"
)

// installScriptURL is the official Homebrew bootstrap script
const installScriptURL = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// Brew wraps the brew CLI
type Brew struct {
	runner host.Runner
	logger zerolog.Logger
}

// New creates a Brew over the given runner
func New(runner host.Runner) *Brew {
	return &Brew{
		runner: runner,
		logger: logging.GetLogger("brew"),
	}
}

// Available reports whether brew is on PATH
func (b *Brew) Available() bool {
	_, err := b.runner.LookPath("brew")
	return err == nil
}

// EnsureInstalled installs Homebrew via the official script when brew
// is not on PATH. The script itself is a no-op on an existing install.
func (b *Brew) EnsureInstalled(ctx context.Context) error {
	if b.Available() {
		b.logger.Debug().Msg("brew already on PATH")
		return nil
	}

	b.logger.Info().Msg("Installing Homebrew")
	err := b.runner.RunInteractive(ctx, "/bin/bash", "-c",
		`curl -fsSL `+installScriptURL+` | /bin/bash`)
	if err != nil {
		return errors.Wrap(err, errors.ErrToolNotFound, "Homebrew install script failed")
	}

	if !b.Available() {
		return errors.New(errors.ErrToolNotFound, "brew still not on PATH after install")
	}
	return nil
}

// DisableAnalytics opts out of Homebrew usage analytics
func (b *Brew) DisableAnalytics(ctx context.Context) error {
	if _, err := b.runner.Run(ctx, "brew", "analytics", "off"); err != nil {
		return errors.Wrap(err, errors.ErrInstallFailed, "failed to disable brew analytics")
	}
	return nil
}

// InstalledFormulae returns the set of installed formula names
func (b *Brew) InstalledFormulae(ctx context.Context) (map[string]bool, error) {
	return b.list(ctx, "--formula")
}

// InstalledCasks returns the set of installed cask names
func (b *Brew) InstalledCasks(ctx context.Context) (map[string]bool, error) {
	return b.list(ctx, "--cask")
}

func (b *Brew) list(ctx context.Context, flag string) (map[string]bool, error) {
	installed := make(map[string]bool)

	result, err := b.runner.Run(ctx, "brew", "list", flag)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInstallFailed, "brew list %s failed", flag)
	}

	scanner := bufio.NewScanner(strings.NewReader(result.Stdout))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			installed[name] = true
		}
	}

	return installed, nil
}

// InstallFormula installs a single formula
func (b *Brew) InstallFormula(ctx context.Context, name string) error {
	b.logger.Info().Str("formula", name).Msg("Installing formula")
	if _, err := b.runner.Run(ctx, "brew", "install", name); err != nil {
		return errors.Wrapf(err, errors.ErrInstallFailed, "formula %q failed to install", name).
			WithDetail("formula", name)
	}
	return nil
}

// InstallCask installs a single cask
func (b *Brew) InstallCask(ctx context.Context, name string) error {
	b.logger.Info().Str("cask", name).Msg("Installing cask")
	if _, err := b.runner.Run(ctx, "brew", "install", "--cask", name); err != nil {
		return errors.Wrapf(err, errors.ErrInstallFailed, "cask %q failed to install", name).
			WithDetail("cask", name)
	}
	return nil
}
