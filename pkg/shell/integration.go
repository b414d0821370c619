package shell

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/logging"
	"github.com/arthur-debert/dotup/pkg/paths"
)

// Integration writes the generated shell artifacts and wires them into
// the user's profile
type Integration struct {
	Paths *paths.Paths

	runner host.Runner
	fs     host.FS
	logger zerolog.Logger
}

// NewIntegration creates an Integration
func NewIntegration(runner host.Runner, fs host.FS, p *paths.Paths) *Integration {
	return &Integration{
		Paths:  p,
		runner: runner,
		fs:     fs,
		logger: logging.GetLogger("shell.integration"),
	}
}

// ProfileLine returns the guarded line added to the user profile; it
// sources the generated env snippet when present
func (i *Integration) ProfileLine() string {
	snippet := i.Paths.EnvSnippetPath()
	return fmt.Sprintf(`[ -f "%s" ] && source "%s"`, snippet, snippet)
}

// WriteEnvSnippet regenerates the env snippet, overwriting any previous
// version
func (i *Integration) WriteEnvSnippet(overrides []EnvironmentOverride) error {
	path := i.Paths.EnvSnippetPath()

	if err := i.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := i.fs.WriteFile(path, []byte(RenderSnippet(overrides)), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	i.logger.Debug().Str("path", path).Int("overrides", len(overrides)).Msg("Wrote env snippet")
	return nil
}

// EnsureProfileLine appends the integration line to the profile file
// unless it is already there. Returns whether the line was added.
func (i *Integration) EnsureProfileLine(profilePath string) (bool, error) {
	added, err := host.AppendLineIfAbsent(i.fs, profilePath, i.ProfileLine())
	if err != nil {
		return false, err
	}
	if added {
		i.logger.Info().Str("profile", profilePath).Msg("Added integration line to profile")
	}
	return added, nil
}

// WritePromptInit captures `<prompt> init <shell>` and writes it into
// the shell scripts directory. Overwritten unconditionally each run:
// the prompt tool owns the content, dotup just materializes it.
func (i *Integration) WritePromptInit(ctx context.Context, prompt, shellName string) (string, error) {
	if prompt == "" {
		return "", nil
	}

	if _, err := i.runner.LookPath(prompt); err != nil {
		return "", errors.Wrapf(err, errors.ErrToolNotFound, "prompt tool %q not found", prompt)
	}

	result, err := i.runner.Run(ctx, prompt, "init", shellName)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInstallFailed, "%s init %s failed", prompt, shellName)
	}

	path := filepath.Join(i.Paths.ShellScriptsDir(), fmt.Sprintf("%s-init.%s", prompt, shellName))
	if err := i.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := i.fs.WriteFile(path, []byte(result.Stdout), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	i.logger.Info().Str("prompt", prompt).Str("path", path).Msg("Wrote prompt init script")
	return path, nil
}
