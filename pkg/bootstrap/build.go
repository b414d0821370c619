package bootstrap

import (
	"github.com/arthur-debert/dotup/pkg/appstore"
	"github.com/arthur-debert/dotup/pkg/brew"
	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/dotfiles"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/paths"
	"github.com/arthur-debert/dotup/pkg/shell"
	"github.com/arthur-debert/dotup/pkg/shellswitch"
)

// DefaultStages wires the standard five-stage sequence from a config
// and a host. Every collaborator goes through the runner and fs
// abstractions, so the same wiring serves both real runs and fake-host
// tests.
func DefaultStages(runner host.Runner, fs host.FS, cfg *config.Config, p *paths.Paths) []Stage {
	dotfilesManager := dotfiles.New(runner, fs,
		cfg.Dotfiles.BareDir, p.Home(), cfg.Dotfiles.Remote, cfg.Dotfiles.Branch)

	return []Stage{
		NewToolchainStage(runner),
		NewPackagesStage(brew.New(runner), cfg),
		NewAppStoreStage(appstore.New(runner), cfg),
		NewDotfilesStage(dotfilesManager),
		NewShellStage(shellswitch.New(runner, fs), shell.NewIntegration(runner, fs, p), fs, cfg),
	}
}

// LenientFailures collects per-package failures recorded by stages
// during a lenient run
func LenientFailures(stages []Stage) []config.PackageSpec {
	var failed []config.PackageSpec
	for _, s := range stages {
		switch st := s.(type) {
		case *PackagesStage:
			failed = append(failed, st.Failures()...)
		case *AppStoreStage:
			failed = append(failed, st.Failures()...)
		}
	}
	return failed
}
