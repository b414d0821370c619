package bootstrap

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotup/pkg/appstore"
	"github.com/arthur-debert/dotup/pkg/brew"
	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/dotfiles"
	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/logging"
	"github.com/arthur-debert/dotup/pkg/shell"
	"github.com/arthur-debert/dotup/pkg/shellswitch"
)

// Stage names, stable identifiers for --skip-stage and reports
const (
	StageToolchain = "toolchain"
	StagePackages  = "packages"
	StageAppStore  = "appstore"
	StageDotfiles  = "dotfiles"
	StageShell     = "shell"
)

// ToolchainStage ensures the developer command-line tools are present
type ToolchainStage struct {
	runner host.Runner
	logger zerolog.Logger
}

// NewToolchainStage creates the toolchain stage
func NewToolchainStage(runner host.Runner) *ToolchainStage {
	return &ToolchainStage{
		runner: runner,
		logger: logging.GetLogger("bootstrap.toolchain"),
	}
}

// Name implements Stage
func (s *ToolchainStage) Name() string { return StageToolchain }

// Check implements Stage; the tools are present when xcode-select
// resolves a developer directory
func (s *ToolchainStage) Check(ctx context.Context) (bool, error) {
	_, err := s.runner.Run(ctx, "xcode-select", "-p")
	return err == nil, nil
}

// Run implements Stage
func (s *ToolchainStage) Run(ctx context.Context) error {
	ok, _ := s.Check(ctx)
	if ok {
		s.logger.Debug().Msg("developer tools already installed")
		return nil
	}

	s.logger.Info().Msg("Installing developer command-line tools")
	if err := s.runner.RunInteractive(ctx, "xcode-select", "--install"); err != nil {
		return errors.Wrap(err, errors.ErrInstallFailed, "xcode-select --install failed")
	}
	return nil
}

// PackagesStage ensures Homebrew is installed and configured and the
// configured formulae and casks are present
type PackagesStage struct {
	brew   *brew.Brew
	cfg    *config.Config
	logger zerolog.Logger
	failed []config.PackageSpec
}

// NewPackagesStage creates the package-manager stage
func NewPackagesStage(b *brew.Brew, cfg *config.Config) *PackagesStage {
	return &PackagesStage{
		brew:   b,
		cfg:    cfg,
		logger: logging.GetLogger("bootstrap.packages"),
	}
}

// Name implements Stage
func (s *PackagesStage) Name() string { return StagePackages }

// Failures returns the installs that failed during a lenient run
func (s *PackagesStage) Failures() []config.PackageSpec {
	return s.failed
}

// Check implements Stage
func (s *PackagesStage) Check(ctx context.Context) (bool, error) {
	if !s.brew.Available() {
		return false, nil
	}

	formulae, err := s.brew.InstalledFormulae(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range s.cfg.Packages.Formulae {
		if !formulae[name] {
			return false, nil
		}
	}

	if len(s.cfg.Packages.Casks) > 0 {
		casks, err := s.brew.InstalledCasks(ctx)
		if err != nil {
			return false, err
		}
		for _, name := range s.cfg.Packages.Casks {
			if !casks[name] {
				return false, nil
			}
		}
	}

	return true, nil
}

// Run implements Stage
func (s *PackagesStage) Run(ctx context.Context) error {
	s.failed = nil

	if err := s.brew.EnsureInstalled(ctx); err != nil {
		return err
	}
	if err := s.brew.DisableAnalytics(ctx); err != nil {
		return err
	}

	formulae, err := s.brew.InstalledFormulae(ctx)
	if err != nil {
		return err
	}
	for _, name := range s.cfg.Packages.Formulae {
		if formulae[name] {
			s.logger.Debug().Str("formula", name).Msg("formula already installed")
			continue
		}
		if err := s.brew.InstallFormula(ctx, name); err != nil {
			if !s.cfg.Lenient {
				return err
			}
			s.logger.Warn().Err(err).Str("formula", name).Msg("Install failed, continuing (lenient)")
			s.failed = append(s.failed, config.PackageSpec{Name: name, Kind: config.KindFormula})
		}
	}

	casks := map[string]bool{}
	if len(s.cfg.Packages.Casks) > 0 {
		if casks, err = s.brew.InstalledCasks(ctx); err != nil {
			return err
		}
	}
	for _, name := range s.cfg.Packages.Casks {
		if casks[name] {
			s.logger.Debug().Str("cask", name).Msg("cask already installed")
			continue
		}
		if err := s.brew.InstallCask(ctx, name); err != nil {
			if !s.cfg.Lenient {
				return err
			}
			s.logger.Warn().Err(err).Str("cask", name).Msg("Install failed, continuing (lenient)")
			s.failed = append(s.failed, config.PackageSpec{Name: name, Kind: config.KindCask})
		}
	}

	return nil
}

// AppStoreStage ensures the configured store apps are installed
type AppStoreStage struct {
	client *appstore.Client
	cfg    *config.Config
	logger zerolog.Logger
	failed []config.PackageSpec
}

// NewAppStoreStage creates the app-store stage
func NewAppStoreStage(client *appstore.Client, cfg *config.Config) *AppStoreStage {
	return &AppStoreStage{
		client: client,
		cfg:    cfg,
		logger: logging.GetLogger("bootstrap.appstore"),
	}
}

// Name implements Stage
func (s *AppStoreStage) Name() string { return StageAppStore }

// Failures returns the installs that failed during a lenient run
func (s *AppStoreStage) Failures() []config.PackageSpec {
	return s.failed
}

// Check implements Stage
func (s *AppStoreStage) Check(ctx context.Context) (bool, error) {
	if len(s.cfg.AppStore.Apps) == 0 {
		return true, nil
	}
	if !s.client.Available() {
		return false, nil
	}

	installed, err := s.client.InstalledIDs(ctx)
	if err != nil {
		return false, err
	}
	for _, app := range s.cfg.AppStore.Apps {
		if !installed[app.ID] {
			return false, nil
		}
	}
	return true, nil
}

// Run implements Stage
func (s *AppStoreStage) Run(ctx context.Context) error {
	s.failed = nil

	if len(s.cfg.AppStore.Apps) == 0 {
		s.logger.Debug().Msg("no store apps configured")
		return nil
	}

	if !s.client.Available() {
		return errors.New(errors.ErrToolNotFound, "mas not found on PATH; add it to packages.formulae")
	}

	installed, err := s.client.InstalledIDs(ctx)
	if err != nil {
		return err
	}

	for _, app := range s.cfg.AppStore.Apps {
		if installed[app.ID] {
			s.logger.Debug().Str("app", app.Name).Msg("store app already installed")
			continue
		}
		if err := s.client.Install(ctx, app); err != nil {
			if !s.cfg.Lenient {
				return err
			}
			s.logger.Warn().Err(err).Str("app", app.Name).Msg("Install failed, continuing (lenient)")
			s.failed = append(s.failed, config.PackageSpec{Name: app.Name, Kind: config.KindStoreApp})
		}
	}

	return nil
}

// DotfilesStage overlays the dotfiles repository onto the home dir
type DotfilesStage struct {
	manager *dotfiles.Manager
	logger  zerolog.Logger
}

// NewDotfilesStage creates the dotfiles stage
func NewDotfilesStage(manager *dotfiles.Manager) *DotfilesStage {
	return &DotfilesStage{
		manager: manager,
		logger:  logging.GetLogger("bootstrap.dotfiles"),
	}
}

// Name implements Stage
func (s *DotfilesStage) Name() string { return StageDotfiles }

// Check implements Stage
func (s *DotfilesStage) Check(ctx context.Context) (bool, error) {
	if s.manager.Remote == "" {
		return true, nil
	}
	return s.manager.Cloned(), nil
}

// Run implements Stage. With no remote configured there is nothing to
// overlay and the stage succeeds as a no-op.
func (s *DotfilesStage) Run(ctx context.Context) error {
	if s.manager.Remote == "" && !s.manager.Cloned() {
		s.logger.Debug().Msg("no dotfiles remote configured")
		return nil
	}

	if err := s.manager.Clone(ctx); err != nil {
		return err
	}
	if err := s.manager.Checkout(ctx, ""); err != nil {
		return err
	}
	return s.manager.HideUntracked(ctx)
}

// ShellStage registers the target shell, makes it the default, and
// wires the environment integration
type ShellStage struct {
	switcher    *shellswitch.Switcher
	integration *shell.Integration
	fs          host.FS
	cfg         *config.Config
	logger      zerolog.Logger
}

// NewShellStage creates the shell stage
func NewShellStage(switcher *shellswitch.Switcher, integration *shell.Integration, fs host.FS, cfg *config.Config) *ShellStage {
	return &ShellStage{
		switcher:    switcher,
		integration: integration,
		fs:          fs,
		cfg:         cfg,
		logger:      logging.GetLogger("bootstrap.shell"),
	}
}

// Name implements Stage
func (s *ShellStage) Name() string { return StageShell }

// Check implements Stage
func (s *ShellStage) Check(ctx context.Context) (bool, error) {
	registered, err := s.switcher.Registered(s.cfg.Shell.Path)
	if err != nil || !registered {
		return false, err
	}
	return host.ContainsLine(s.fs, s.cfg.Shell.Profile, s.integration.ProfileLine())
}

// Run implements Stage
func (s *ShellStage) Run(ctx context.Context) error {
	shellPath := s.cfg.Shell.Path

	if err := s.switcher.Register(shellPath); err != nil {
		return err
	}
	if err := s.switcher.SetDefault(ctx, shellPath); err != nil {
		return err
	}

	if err := s.integration.WriteEnvSnippet(shell.HomebrewOverrides(s.cfg.Homebrew.Prefix)); err != nil {
		return err
	}
	if _, err := s.integration.EnsureProfileLine(s.cfg.Shell.Profile); err != nil {
		return err
	}

	shellName := filepath.Base(shellPath)
	if _, err := s.integration.WritePromptInit(ctx, s.cfg.Shell.Prompt, shellName); err != nil {
		return err
	}

	return nil
}
