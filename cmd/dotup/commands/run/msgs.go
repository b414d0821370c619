package run

// Message constants
const (
	MsgShort   = "Run the bootstrap sequence"
	MsgLong    = "Run executes the bootstrap stages in order: toolchain, packages,\nappstore, dotfiles, shell. Satisfied stages are skipped, so the\ncommand is safe to re-run."
	MsgExample = `  dotup run                        # Full bootstrap
  dotup run --dry-run              # Show what would happen
  dotup run --skip-stage appstore  # Skip the app-store stage
  dotup run --lenient              # Keep going past failed installs`

	// Status messages
	MsgDryRunNotice  = "\nDRY RUN MODE - No changes were made"
	MsgLenientHeader = "\nThe following installs failed and were skipped:"
	MsgLenientItem   = "  ✗ %s\n"
	MsgStageStart    = "==> %s\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrRunLocked  = "another dotup run is already in progress"

	// Flag descriptions
	MsgFlagConfig  = "Path to a configuration file"
	MsgFlagSkip    = "Stage to skip (repeatable)"
	MsgFlagDryRun  = "Preview stage status without executing anything"
	MsgFlagLenient = "Report failed package installs at the end instead of aborting"
)
