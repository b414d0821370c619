// Package status implements the read-only stage probe command.
package status

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotup/pkg/bootstrap"
	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/paths"
	"github.com/arthur-debert/dotup/pkg/style"
)

// NewCommand creates the status command
func NewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "status",
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

			stages := bootstrap.DefaultStages(host.NewExecRunner(), host.NewOSFilesystem(), cfg, p)

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
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)

	return cmd
}

func loadConfig(p *paths.Paths, path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(p, path)
	}
	return config.Load(p)
}
