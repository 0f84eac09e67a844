// Package base carries the pieces shared by every CLI command.
package base

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/cardboard-sh/cardboard/internal/config"
	"github.com/cardboard-sh/cardboard/pkg/trello"
)

// Command is embedded by all CLI commands.
type Command struct {
	// UI is the command line UI.
	UI cli.Ui

	// Log is the root logger.
	Log hclog.Logger

	// FS is the filesystem used for config loading. Defaults to the OS
	// filesystem; tests inject a MemMapFs.
	FS afero.Fs
}

// NewCommand returns a Command with the given UI and logger.
func NewCommand(ui cli.Ui, log hclog.Logger) *Command {
	return &Command{
		UI:  ui,
		Log: log,
		FS:  afero.NewOsFs(),
	}
}

// Client builds a Trello client from the config file at path (or the
// default location when path is empty) plus environment overrides.
// verbose raises the log level to debug.
func (c *Command) Client(path string, verbose bool) (*trello.Client, error) {
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(c.FS, path)
	if err != nil {
		return nil, err
	}

	logger := c.Log
	if verbose {
		logger = c.Log.Named("client")
		logger.SetLevel(hclog.Debug)
	}
	cfg.Logger = logger

	client, err := trello.New(cfg)
	if err != nil {
		if errors.Is(err, trello.ErrMissingCredentials) {
			return nil, fmt.Errorf(
				"%w: set TRELLO_API_KEY and TRELLO_TOKEN, or add a credentials block to %s",
				err, config.DefaultFileName)
		}
		return nil, fmt.Errorf("initializing client: %w", err)
	}
	return client, nil
}

// FlagSet wraps flag.FlagSet with help rendering for command Help
// output.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet returns a FlagSet wrapping fs.
func NewFlagSet(fs *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: fs}
}

// Help returns the flag usage block, indented for appending to a
// command's help text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")

	f.VisitAll(func(fl *flag.Flag) {
		b.WriteString(fmt.Sprintf("  -%s", fl.Name))
		if fl.DefValue != "" && fl.DefValue != "false" {
			b.WriteString(fmt.Sprintf(" (default: %s)", fl.DefValue))
		}
		b.WriteString(fmt.Sprintf("\n      %s\n", fl.Usage))
	})

	return strings.TrimRight(b.String(), "\n")
}
