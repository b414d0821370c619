package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotup/pkg/errors"
)

// GenerateConfigContent generates a starter user config: the embedded
// defaults with every value line commented out, ready to uncomment and
// edit
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultConfigContent())
}

// Marshal renders a Config as TOML, used by genconfig --from-current to
// snapshot the effective configuration
func Marshal(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return string(out), nil
}

// commentOutConfigValues comments out every assignment line, keeping
// blanks, comments, and section headers as-is
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
