// Package boards implements the board listing and display commands.
package boards

import (
	"context"
	"flag"
	"fmt"

	"github.com/cardboard-sh/cardboard/internal/cmd/base"
	"github.com/cardboard-sh/cardboard/pkg/trello"
)

// ListCommand lists a member's boards.
type ListCommand struct {
	*base.Command

	flagConfig  string
	flagMember  string
	flagFilter  string
	flagVerbose bool
}

func (c *ListCommand) Synopsis() string {
	return "List a member's boards"
}

func (c *ListCommand) Help() string {
	return `Usage: cardboard boards [options]

  Lists the boards visible to a member. Defaults to the boards of the
  member owning the configured token.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("boards", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.StringVar(&c.flagMember, "member", trello.Me, "Member ID or username.")
	f.StringVar(&c.flagFilter, "filter", trello.FilterOpen,
		"Board filter: all, open, closed, starred.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging and cache stats.")

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

	boards, err := client.Boards().List(context.Background(), c.flagMember, c.flagFilter)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing boards: %v", err))
		return 1
	}

	if len(boards) == 0 {
		ui.Info("No boards found")
		return 0
	}

	for _, b := range boards {
		status := ""
		if b.Closed {
			status = " (closed)"
		}
		ui.Output(fmt.Sprintf("%s  %s%s", b.ID, b.Name, status))
	}

	if c.flagVerbose {
		stats := client.CacheStats()
		ui.Info(fmt.Sprintf("cache: %d hits, %d misses", stats.Hits, stats.Misses))
	}

	return 0
}

// ShowCommand displays a single board.
type ShowCommand struct {
	*base.Command

	flagConfig  string
	flagLists   bool
	flagCards   bool
	flagVerbose bool
}

func (c *ShowCommand) Synopsis() string {
	return "Show a board"
}

func (c *ShowCommand) Help() string {
	return `Usage: cardboard board <board-id> [options]

  Shows a board, optionally with its lists and cards.` +
		c.Flags().Help()
}

func (c *ShowCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("board", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.BoolVar(&c.flagLists, "lists", false, "Include the board's lists.")
	f.BoolVar(&c.flagCards, "cards", false, "Include the board's cards.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging and cache stats.")

	return f
}

func (c *ShowCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if flags.NArg() != 1 {
		ui.Error("exactly one board ID is required")
		return 1
	}
	boardID := flags.Arg(0)

	client, err := c.Client(c.flagConfig, c.flagVerbose)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	ctx := context.Background()

	board, err := client.Boards().Get(ctx, boardID)
	if err != nil {
		ui.Error(fmt.Sprintf("error fetching board: %v", err))
		return 1
	}

	ui.Output(fmt.Sprintf("%s  %s", board.ID, board.Name))
	if board.Desc != "" {
		ui.Output("  " + board.Desc)
	}
	ui.Output("  " + board.ShortURL)

	if c.flagLists {
		lists, err := client.Boards().Lists(ctx, boardID, trello.FilterOpen)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching lists: %v", err))
			return 1
		}
		ui.Output(fmt.Sprintf("Lists (%d):", len(lists)))
		for _, l := range lists {
			ui.Output(fmt.Sprintf("  %s  %s", l.ID, l.Name))
		}
	}

	if c.flagCards {
		cards, err := client.Boards().Cards(ctx, boardID)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching cards: %v", err))
			return 1
		}
		ui.Output(fmt.Sprintf("Cards (%d):", len(cards)))
		for _, card := range cards {
			ui.Output(fmt.Sprintf("  %s  %s", card.ID, card.Name))
		}
	}

	return 0
}
