package host

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	dotuperr "github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/logging"
)

// DefaultCommandTimeout bounds a single external command. Package
// installs can legitimately take minutes.
const DefaultCommandTimeout = 15 * time.Minute

// Result holds the outcome of an external command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner invokes external tools
type Runner interface {
	// LookPath reports the resolved path of an executable, or an error
	// when it is not on PATH
	LookPath(name string) (string, error)

	// Run executes a command with captured output
	Run(ctx context.Context, name string, args ...string) (Result, error)

	// RunInteractive executes a command with stdio attached to the
	// invoking terminal. Used for passthrough and anything that prompts.
	RunInteractive(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger  zerolog.Logger
	timeout time.Duration
}

// NewExecRunner creates a runner with the default command timeout
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		logger:  logging.GetLogger("host.runner"),
		timeout: DefaultCommandTimeout,
	}
}

// LookPath implements Runner
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", dotuperr.Wrapf(err, dotuperr.ErrToolNotFound, "%s not found on PATH", name)
	}
	return path, nil
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}

	if err != nil {
		r.logger.Debug().
			Err(err).
			Str("command", name).
			Strs("args", args).
			Str("stderr", result.Stderr).
			Msg("Command failed")
		return result, err
	}

	return result, nil
}

// RunInteractive implements Runner
func (r *ExecRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	return cmd.Run()
}
