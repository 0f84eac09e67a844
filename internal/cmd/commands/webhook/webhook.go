// Package webhook implements the webhook management commands.
package webhook

import (
	"context"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/cardboard-sh/cardboard/internal/cmd/base"
	"github.com/cardboard-sh/cardboard/pkg/trello"
)

// Command groups the webhook subcommands.
type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage webhooks"
}

func (c *Command) Help() string {
	return `Usage: cardboard webhook <subcommand> [options]

  This command groups subcommands for managing webhooks registered for
  the configured token.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// CreateCommand registers a webhook.
type CreateCommand struct {
	*base.Command

	flagConfig      string
	flagCallbackURL string
	flagModel       string
	flagDescription string
	flagVerbose     bool
}

func (c *CreateCommand) Synopsis() string {
	return "Register a webhook watching a model"
}

func (c *CreateCommand) Help() string {
	return `Usage: cardboard webhook create [options]

  Registers a webhook. Trello probes the callback URL with a HEAD
  request before accepting the registration, so the endpoint must be
  reachable.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("webhook create", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.StringVar(&c.flagCallbackURL, "callback-url", "",
		"(Required) URL Trello will POST callbacks to.")
	f.StringVar(&c.flagModel, "model", "",
		"(Required) ID of the board, list, card, or member to watch.")
	f.StringVar(&c.flagDescription, "description", "", "Webhook description.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging.")

	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if c.flagCallbackURL == "" || c.flagModel == "" {
		ui.Error("callback-url and model flags are required")
		return 1
	}

	client, err := c.Client(c.flagConfig, c.flagVerbose)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	webhook, err := client.Webhooks().Create(context.Background(), trello.CreateWebhookRequest{
		CallbackURL: c.flagCallbackURL,
		IDModel:     c.flagModel,
		Description: c.flagDescription,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating webhook: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Created webhook %s watching %s", webhook.ID, webhook.IDModel))
	return 0
}

// ListCommand lists the token's webhooks.
type ListCommand struct {
	*base.Command

	flagConfig  string
	flagVerbose bool
}

func (c *ListCommand) Synopsis() string {
	return "List the token's webhooks"
}

func (c *ListCommand) Help() string {
	return `Usage: cardboard webhook list [options]

  Lists the webhooks registered for the configured token.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("webhook list", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging.")

	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return 1
	}

	client, err := c.Client(c.flagConfig, c.flagVerbose)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	webhooks, err := client.Webhooks().List(context.Background())
	if err != nil {
		ui.Error(fmt.Sprintf("error listing webhooks: %v", err))
		return 1
	}

	if len(webhooks) == 0 {
		ui.Info("No webhooks registered")
		return 0
	}

	for _, w := range webhooks {
		state := "active"
		if !w.Active {
			state = "inactive"
		}
		ui.Output(fmt.Sprintf("%s  %s  model=%s  %s", w.ID, state, w.IDModel, w.CallbackURL))
	}

	return 0
}

// DeleteCommand unregisters one or more webhooks.
type DeleteCommand struct {
	*base.Command

	flagConfig  string
	flagVerbose bool
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete webhooks"
}

func (c *DeleteCommand) Help() string {
	return `Usage: cardboard webhook delete <webhook-id> [<webhook-id> ...]

  Unregisters the given webhooks. Failures are reported per webhook and
  do not stop the remaining deletions.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("webhook delete", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging.")

	return f
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if flags.NArg() == 0 {
		ui.Error("at least one webhook ID is required")
		return 1
	}

	client, err := c.Client(c.flagConfig, c.flagVerbose)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	if err := client.Webhooks().DeleteAll(context.Background(), flags.Args()...); err != nil {
		ui.Error(fmt.Sprintf("error deleting webhooks: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Deleted %d webhook(s)", flags.NArg()))
	return 0
}
