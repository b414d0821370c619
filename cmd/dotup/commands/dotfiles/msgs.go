package dotfiles

// Message constants
const (
	MsgShort   = "Run git against the dotfiles bare repository"
	MsgLong    = "Dotfiles forwards its arguments to git with the bare repository as\nthe git dir and your home directory as the work tree, so tracked\nfiles can be managed in place."
	MsgExample = `  dotup dotfiles status
  dotup dotfiles add -u
  dotup dotfiles commit -m "tweak zshrc"
  dotup dotfiles push`

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
)
