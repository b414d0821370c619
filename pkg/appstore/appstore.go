// Package appstore installs Mac App Store applications through the mas
// CLI. mas requires the user to be signed in to the store; sign-in
// itself is out of scope and surfaces as the tool's own error.
package appstore

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotup/pkg/config"
	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/host"
	"github.com/arthur-debert/dotup/pkg/logging"
)

// Client wraps the mas CLI
type Client struct {
	runner host.Runner
	logger zerolog.Logger
}

// New creates a Client over the given runner
func New(runner host.Runner) *Client {
	return &Client{
		runner: runner,
		logger: logging.GetLogger("appstore"),
	}
}

// Available reports whether mas is on PATH
func (c *Client) Available() bool {
	_, err := c.runner.LookPath("mas")
	return err == nil
}

// InstalledIDs returns the set of installed app-store product IDs,
// parsed from `mas list` lines of the form "497799835 Xcode (15.0)"
func (c *Client) InstalledIDs(ctx context.Context) (map[int64]bool, error) {
	installed := make(map[int64]bool)

	result, err := c.runner.Run(ctx, "mas", "list")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInstallFailed, "mas list failed")
	}

	scanner := bufio.NewScanner(strings.NewReader(result.Stdout))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		installed[id] = true
	}

	return installed, nil
}

// Install installs one store app by numeric ID
func (c *Client) Install(ctx context.Context, app config.StoreApp) error {
	c.logger.Info().Int64("id", app.ID).Str("name", app.Name).Msg("Installing store app")

	if _, err := c.runner.Run(ctx, "mas", "install", strconv.FormatInt(app.ID, 10)); err != nil {
		return errors.Wrapf(err, errors.ErrInstallFailed, "store app %q (%d) failed to install", app.Name, app.ID).
			WithDetail("id", app.ID)
	}
	return nil
}
