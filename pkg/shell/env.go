// Package shell generates the environment integration the bootstrap
// leaves behind: an env snippet with the Homebrew variables and PATH
// prepends, a guarded source line in the user's profile, and the prompt
// tool's init script in the vendor autoload directory.
package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OverrideOp says how an EnvironmentOverride is applied
type OverrideOp int

const (
	// OpSet exports the variable with the value
	OpSet OverrideOp = iota

	// OpAppendPath prepends the value to the executable search path
	OpAppendPath
)

// EnvironmentOverride is one environment customization re-applied at
// every interactive session start
type EnvironmentOverride struct {
	Variable string
	Value    string
	Op       OverrideOp
}

// Render emits the override as a POSIX shell line
func (o EnvironmentOverride) Render() string {
	switch o.Op {
	case OpAppendPath:
		return fmt.Sprintf(`export PATH="%s:$PATH"`, o.Value)
	default:
		return fmt.Sprintf(`export %s="%s"`, o.Variable, o.Value)
	}
}

// HomebrewOverrides returns the overrides derived from a Homebrew
// prefix: the three HOMEBREW_* variables plus bin and sbin on PATH
func HomebrewOverrides(prefix string) []EnvironmentOverride {
	return []EnvironmentOverride{
		{Variable: "HOMEBREW_PREFIX", Value: prefix, Op: OpSet},
		{Variable: "HOMEBREW_CELLAR", Value: filepath.Join(prefix, "Cellar"), Op: OpSet},
		{Variable: "HOMEBREW_REPOSITORY", Value: prefix, Op: OpSet},
		{Variable: "PATH", Value: filepath.Join(prefix, "sbin"), Op: OpAppendPath},
		{Variable: "PATH", Value: filepath.Join(prefix, "bin"), Op: OpAppendPath},
	}
}

// RenderSnippet renders the full env snippet from a set of overrides.
// The snippet is regenerated every run; it is a derived artifact, never
// hand-edited.
func RenderSnippet(overrides []EnvironmentOverride) string {
	var b strings.Builder
	b.WriteString("# Generated by dotup. Do not edit; rerun `dotup run` to refresh.\n")
	for _, o := range overrides {
		b.WriteString(o.Render())
		b.WriteByte('\n')
	}
	return b.String()
}
