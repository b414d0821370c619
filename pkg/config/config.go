// Package config loads and merges dotup configuration: embedded
// defaults layered under an optional user config file (TOML or YAML).
package config

import "fmt"

// PackageKind classifies an installable item
type PackageKind string

const (
	// KindFormula is a package-manager-installable command-line package
	KindFormula PackageKind = "formula"

	// KindCask is a package-manager-installable bundled application or font
	KindCask PackageKind = "cask"

	// KindStoreApp is an application installed through the app store client
	KindStoreApp PackageKind = "storeapp"
)

// PackageSpec identifies one installable item. Identity is name + kind.
type PackageSpec struct {
	Name string
	Kind PackageKind
}

func (p PackageSpec) String() string {
	return fmt.Sprintf("%s/%s", p.Kind, p.Name)
}

// Config is the root configuration for a bootstrap run
type Config struct {
	Packages PackagesConfig `koanf:"packages" toml:"packages"`
	AppStore AppStoreConfig `koanf:"appstore" toml:"appstore"`
	Dotfiles DotfilesConfig `koanf:"dotfiles" toml:"dotfiles"`
	Shell    ShellConfig    `koanf:"shell" toml:"shell"`
	Homebrew HomebrewConfig `koanf:"homebrew" toml:"homebrew"`

	// Lenient makes individual package-install failures non-fatal;
	// they are collected and reported at the end of the stage instead
	// of aborting the run
	Lenient bool `koanf:"lenient" toml:"lenient"`
}

// PackagesConfig lists what the package-manager stage installs
type PackagesConfig struct {
	Formulae []string `koanf:"formulae" toml:"formulae"`
	Casks    []string `koanf:"casks" toml:"casks"`
}

// StoreApp is one app-store item; the numeric ID is what the store
// client consumes, the name is for humans
type StoreApp struct {
	ID   int64  `koanf:"id" toml:"id"`
	Name string `koanf:"name" toml:"name"`
}

// AppStoreConfig lists what the app-store stage installs
type AppStoreConfig struct {
	Apps []StoreApp `koanf:"apps" toml:"apps"`
}

// DotfilesConfig describes the personal configuration repository
// overlaid onto the home directory
type DotfilesConfig struct {
	Remote  string `koanf:"remote" toml:"remote"`
	Branch  string `koanf:"branch" toml:"branch"`
	BareDir string `koanf:"bare_dir" toml:"bare_dir"`
}

// ShellConfig describes the target login shell and its integration
type ShellConfig struct {
	// Path is the shell binary registered and set as default
	Path string `koanf:"path" toml:"path"`

	// Profile is the interactive-shell profile file receiving the
	// guarded integration line
	Profile string `koanf:"profile" toml:"profile"`

	// Prompt is the prompt tool whose init script is generated into
	// the vendor autoload directory ("" disables)
	Prompt string `koanf:"prompt" toml:"prompt"`
}

// HomebrewConfig carries the installation prefix the environment
// overrides are derived from
type HomebrewConfig struct {
	Prefix string `koanf:"prefix" toml:"prefix"`
}

// Specs flattens the configured packages into PackageSpec records in
// install order: formulae, then casks, then store apps
func (c *Config) Specs() []PackageSpec {
	specs := make([]PackageSpec, 0, len(c.Packages.Formulae)+len(c.Packages.Casks)+len(c.AppStore.Apps))
	for _, name := range c.Packages.Formulae {
		specs = append(specs, PackageSpec{Name: name, Kind: KindFormula})
	}
	for _, name := range c.Packages.Casks {
		specs = append(specs, PackageSpec{Name: name, Kind: KindCask})
	}
	for _, app := range c.AppStore.Apps {
		specs = append(specs, PackageSpec{Name: app.Name, Kind: KindStoreApp})
	}
	return specs
}
