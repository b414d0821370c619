// Package genconfig implements the gen-config command.
package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/paths"
)

// NewCommand creates the gen-config command
func NewCommand() *cobra.Command {
	var (
		write       bool
		fromCurrent bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Aliases: []string{"genconfig"},
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := generate(fromCurrent)
			if err != nil {
				return err
			}

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			p, err := paths.New()
			if err != nil {
				return err
			}

			target := filepath.Join(p.ConfigDir(), config.UserConfigName)
			if _, err := os.Stat(target); err == nil {
				return errors.Newf(errors.ErrFileExists, MsgFileExists, target)
			}

			if err := os.MkdirAll(p.ConfigDir(), 0o755); err != nil {
				return errors.Wrap(err, errors.ErrDirCreate, "failed to create config directory")
			}
			if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to write config file")
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgWroteFile, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&fromCurrent, "from-current", false, MsgFlagFromCurrent)

	return cmd
}

// generate produces either the commented starter config or a snapshot
// of the effective configuration
func generate(fromCurrent bool) (string, error) {
	if !fromCurrent {
		return config.GenerateConfigContent(), nil
	}

	p, err := paths.New()
	if err != nil {
		return "", err
	}
	cfg, err := config.Load(p)
	if err != nil {
		return "", err
	}
	return config.Marshal(cfg)
}
