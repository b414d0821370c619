package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmdFlags(t *testing.T) {
	cmd := NewCommand()

	for _, name := range []string{"config", "skip-stage", "dry-run", "lenient"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "run command should have --%s", name)
	}
}

func TestRunCmdRejectsArgs(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"extra"})

	err := cmd.Execute()
	require.Error(t, err)
}
