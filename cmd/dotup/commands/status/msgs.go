package status

// Message constants
const (
	MsgShort   = "Show which bootstrap stages are satisfied"
	MsgLong    = "Status probes every bootstrap stage without changing anything and\nreports whether each one is already satisfied."
	MsgExample = `  dotup status
  dotup status --config ./dotup.toml`

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"

	// Flag descriptions
	MsgFlagConfig = "Path to a configuration file"
)
