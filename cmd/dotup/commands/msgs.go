package commands

// Message constants
const (
	MsgShort = "Bootstrap a fresh macOS machine"
	MsgLong  = `dotup takes a fresh machine to a working development environment:
developer toolchain, package manager, packages, app-store apps, a
bare-repo dotfiles overlay, and the login shell, in one idempotent run.

Run it as many times as you like; stages that are already satisfied
are skipped.`
)
