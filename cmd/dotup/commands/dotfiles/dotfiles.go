// Package dotfiles implements the git passthrough command.
package dotfiles

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/dotfiles"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/paths"
)

// NewCommand creates the dotfiles command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "dotfiles [git args...]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ArbitraryArgs,
		// Flags after "dotfiles" belong to git, not to us
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New()
			if err != nil {
				return err
			}

			cfg, err := config.Load(p)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			log.Debug().
				Strs("args", args).
				Str("bare_dir", cfg.Dotfiles.BareDir).
				Msg("Forwarding to git")

			mgr := dotfiles.New(
				host.NewExecRunner(),
				host.NewOSFilesystem(),
				cfg.Dotfiles.BareDir,
				p.Home(),
				cfg.Dotfiles.Remote,
				cfg.Dotfiles.Branch,
			)
			return mgr.Passthrough(cmd.Context(), args...)
		},
	}
}
