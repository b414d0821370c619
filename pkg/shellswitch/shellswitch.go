// Package shellswitch changes the user's login shell. The shell binary
// must be listed in the login-shell registry (/etc/shells) before chsh
// will accept it, so the two steps are strictly ordered: Register, then
// SetDefault.
package shellswitch

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/logging"
	"github.com/arthur-debert/dotup/pkg/paths"
)

// Switcher registers a shell and makes it the user's default
type Switcher struct {
	// RegistryPath is the login-shell registry file, /etc/shells unless
	// overridden for tests
	RegistryPath string

	runner host.Runner
	fs     host.FS
	logger zerolog.Logger
}

// New creates a Switcher against the system registry
func New(runner host.Runner, fs host.FS) *Switcher {
	return NewWithRegistry(runner, fs, paths.ShellRegistryFile)
}

// NewWithRegistry creates a Switcher with an explicit registry file
func NewWithRegistry(runner host.Runner, fs host.FS, registryPath string) *Switcher {
	return &Switcher{
		RegistryPath: registryPath,
		runner:       runner,
		fs:           fs,
		logger:       logging.GetLogger("shellswitch"),
	}
}

// Registered reports whether shellPath is listed in the registry
func (s *Switcher) Registered(shellPath string) (bool, error) {
	return host.ContainsLine(s.fs, s.RegistryPath, shellPath)
}

// Register appends shellPath to the registry if absent. Writing the
// registry requires elevation; a denied write surfaces as PERMISSION.
func (s *Switcher) Register(shellPath string) error {
	added, err := host.AppendLineIfAbsent(s.fs, s.RegistryPath, shellPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrPermission) {
			return errors.Wrapf(err, errors.ErrPermission,
				"writing %s requires elevated privileges", s.RegistryPath)
		}
		return errors.Wrapf(err, errors.ErrShellRegistry, "failed to update %s", s.RegistryPath)
	}

	if added {
		s.logger.Info().Str("shell", shellPath).Str("registry", s.RegistryPath).Msg("Registered login shell")
	} else {
		s.logger.Debug().Str("shell", shellPath).Msg("shell already registered")
	}
	return nil
}

// SetDefault changes the invoking user's login shell. The registry is
// checked first: chsh validates the target against it, so an
// unregistered path fails here with PERMISSION rather than a cryptic
// tool error.
func (s *Switcher) SetDefault(ctx context.Context, shellPath string) error {
	registered, err := s.Registered(shellPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrShellRegistry, "failed to read %s", s.RegistryPath)
	}
	if !registered {
		return errors.Newf(errors.ErrPermission,
			"%s is not listed in %s; register it first", shellPath, s.RegistryPath)
	}

	result, err := s.runner.Run(ctx, "chsh", "-s", shellPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrShellChange, "chsh -s %s failed", shellPath).
			WithDetail("stderr", result.Stderr)
	}

	s.logger.Info().Str("shell", shellPath).Msg("Default shell changed")
	return nil
}
