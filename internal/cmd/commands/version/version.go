// Package version implements the version command.
package version

import (
	"github.com/cardboard-sh/cardboard/internal/cmd/base"
	"github.com/cardboard-sh/cardboard/internal/version"
)

// Command prints the CLI version.
type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: cardboard version

  Prints the cardboard version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("cardboard " + version.Version)
	return 0
}
