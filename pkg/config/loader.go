package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/paths"
)

// UserConfigName is the canonical user config file name; the YAML
// variants are accepted when reading but never generated.
const UserConfigName = "dotup.toml"

// User config file names, tried in order
var userConfigNames = []string{UserConfigName, "dotup.yaml", "dotup.yml"}

// Load builds the effective configuration: embedded defaults, then the
// first user config file found in the dotup config directory, then one
// in the current working directory. Later layers override earlier ones
// key by key.
func Load(p *paths.Paths) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User config from the config directory
	if path := findUserConfig(p.ConfigDir()); path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	// 3. Repo-local config in the working directory
	if cwd, err := os.Getwd(); err == nil {
		if path := findUserConfig(cwd); path != "" {
			if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
		}
	}

	return unmarshal(k, p)
}

// LoadFile loads a single explicit config file over the embedded
// defaults, bypassing the search path. Used by --config.
func LoadFile(p *paths.Paths, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
	}

	return unmarshal(k, p)
}

func unmarshal(k *koanf.Koanf, p *paths.Paths) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcess(&cfg, p); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// postProcess expands ~ in path-valued fields and fills derived
// defaults
func postProcess(cfg *Config, p *paths.Paths) error {
	home := p.Home()

	if cfg.Dotfiles.BareDir == "" {
		cfg.Dotfiles.BareDir = p.DefaultBareDir()
	}

	var err error
	if cfg.Dotfiles.BareDir, err = paths.ExpandHome(cfg.Dotfiles.BareDir, home); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid dotfiles.bare_dir")
	}
	if cfg.Shell.Profile, err = paths.ExpandHome(cfg.Shell.Profile, home); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid shell.profile")
	}

	if cfg.Shell.Path == "" {
		return errors.New(errors.ErrConfigValid, "shell.path must not be empty")
	}

	return nil
}

func findUserConfig(dir string) string {
	for _, name := range userConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}
