package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/cardboard-sh/cardboard/internal/cmd/base"
	"github.com/cardboard-sh/cardboard/internal/cmd/commands/boards"
	"github.com/cardboard-sh/cardboard/internal/cmd/commands/cards"
	"github.com/cardboard-sh/cardboard/internal/cmd/commands/resource"
	versioncmd "github.com/cardboard-sh/cardboard/internal/cmd/commands/version"
	"github.com/cardboard-sh/cardboard/internal/cmd/commands/webhook"
)

// Commands is the CLI command registry populated by initCommands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(ui, log)

	Commands = map[string]cli.CommandFactory{
		"boards": func() (cli.Command, error) {
			return &boards.ListCommand{Command: b}, nil
		},
		"board": func() (cli.Command, error) {
			return &boards.ShowCommand{Command: b}, nil
		},
		"cards": func() (cli.Command, error) {
			return &cards.ListCommand{Command: b}, nil
		},
		"card": func() (cli.Command, error) {
			return &cards.ShowCommand{Command: b}, nil
		},
		"resource": func() (cli.Command, error) {
			return &resource.Command{Command: b}, nil
		},
		"webhook": func() (cli.Command, error) {
			return &webhook.Command{Command: b}, nil
		},
		"webhook create": func() (cli.Command, error) {
			return &webhook.CreateCommand{Command: b}, nil
		},
		"webhook list": func() (cli.Command, error) {
			return &webhook.ListCommand{Command: b}, nil
		},
		"webhook delete": func() (cli.Command, error) {
			return &webhook.DeleteCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: b}, nil
		},
	}
}
