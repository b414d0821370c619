// Package run implements the bootstrap run command.
package run

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotup/pkg/bootstrap"
	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/paths"
	"github.com/arthur-debert/dotup/pkg/style"
)

// NewCommand creates the run command
func NewCommand() *cobra.Command {
	var (
		configPath string
		skipStages []string
		dryRun     bool
		lenient    bool
	)

	cmd := &cobra.Command{
		Use:     "run",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New()
			if err != nil {
				return err
			}

			cfg, err := loadConfig(p, configPath)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			if lenient {
				cfg.Lenient = true
			}

			log.Info().
				Strs("skip", skipStages).
				Bool("dry_run", dryRun).
				Bool("lenient", cfg.Lenient).
				Msg("Starting bootstrap run")

			runner := host.NewExecRunner()
			fs := host.NewOSFilesystem()
			stages := bootstrap.DefaultStages(runner, fs, cfg, p)

			if dryRun {
				return renderDryRun(cmd, stages)
			}

			// One run at a time; a second invocation while the first
			// is still installing would race on the same host state.
			unlock, err := acquireLock(p)
			if err != nil {
				return err
			}
			defer unlock()

			seq := bootstrap.NewSequencer(stages...)
			if err := seq.Skip(skipStages...); err != nil {
				return err
			}
			seq.OnStageStart = func(name string) {
				if style.IsTerminal() {
					pterm.Printf(MsgStageStart, pterm.Bold.Sprint(name))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), MsgStageStart, name)
				}
			}

			report, runErr := seq.Run(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderReport(report, style.HasColor()))

			if failed := bootstrap.LenientFailures(stages); len(failed) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), MsgLenientHeader)
				for _, spec := range failed {
					fmt.Fprintf(cmd.ErrOrStderr(), MsgLenientItem, spec.Name)
				}
			}

			return runErr
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)
	cmd.Flags().StringArrayVar(&skipStages, "skip-stage", nil, MsgFlagSkip)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&lenient, "lenient", false, MsgFlagLenient)

	return cmd
}

func loadConfig(p *paths.Paths, path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(p, path)
	}
	return config.Load(p)
}

// acquireLock takes the run lock under the state directory, returning
// the release function
func acquireLock(p *paths.Paths) (func(), error) {
	if err := os.MkdirAll(p.StateDir(), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "failed to create state directory")
	}

	lock := flock.New(p.LockFile())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRunLocked, MsgErrRunLocked)
	}
	if !locked {
		return nil, errors.New(errors.ErrRunLocked, MsgErrRunLocked)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			log.Warn().Err(err).Str("path", p.LockFile()).Msg("Failed to release run lock")
		}
	}, nil
}

func renderDryRun(cmd *cobra.Command, stages []bootstrap.Stage) error {
	names := make([]string, 0, len(stages))
	satisfied := make(map[string]bool, len(stages))
	for _, st := range stages {
		ok, err := st.Check(cmd.Context())
		if err != nil {
			log.Debug().Err(err).Str("stage", st.Name()).Msg("Stage probe failed")
		}
		names = append(names, st.Name())
		satisfied[st.Name()] = ok
	}

	fmt.Fprintln(cmd.OutOrStdout(), style.RenderStatus(names, satisfied, style.HasColor()))
	fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
	return nil
}
