package genconfig

// Message constants
const (
	MsgShort   = "Generate a default configuration file"
	MsgLong    = "Output the default configuration to stdout, or write it to the user\nconfig directory with -w. Generated values are commented out so the\nfile documents the defaults without overriding them."
	MsgExample = `  dotup gen-config        # Output to stdout
  dotup gen-config -w     # Write to the config directory`

	// Status messages
	MsgWroteFile  = "Wrote %s\n"
	MsgFileExists = "config file already exists: %s"

	// Flag descriptions
	MsgFlagWrite       = "Write config to the config directory instead of stdout"
	MsgFlagFromCurrent = "Snapshot the effective configuration instead of the defaults"
)
