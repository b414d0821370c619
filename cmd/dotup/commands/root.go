// Package commands wires the dotup CLI.
package commands

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotup/cmd/dotup/commands/dotfiles"
	"github.com/arthur-debert/dotup/cmd/dotup/commands/genconfig"
	"github.com/arthur-debert/dotup/cmd/dotup/commands/run"
	"github.com/arthur-debert/dotup/cmd/dotup/commands/status"
	"github.com/arthur-debert/dotup/internal/version"
	"github.com/arthur-debert/dotup/pkg/cobrax/topics"
	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/logging"
	"github.com/arthur-debert/dotup/pkg/style"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "dotup",
		Short:   MsgShort,
		Long:    MsgLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(dotfiles.NewCommand())
	rootCmd.AddCommand(status.NewCommand())
	rootCmd.AddCommand(genconfig.NewCommand())

	if topicsFS, err := fs.Sub(topicFiles, "topics"); err == nil {
		_ = topics.Install(rootCmd, topicsFS, topics.Options{
			Extensions: []string{".txt", ".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}

// Execute runs the root command and renders any failure
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		msg := err.Error()
		if style.HasColor() {
			msg = style.ErrorStyle.Render(msg)
		}
		fmt.Fprintln(rootCmd.ErrOrStderr(), msg)
		log.Debug().Str("code", string(errors.GetErrorCode(err))).Msg("Command failed")
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dotup version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}
