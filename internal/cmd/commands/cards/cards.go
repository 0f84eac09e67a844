// Package cards implements the card listing and display commands.
package cards

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/cardboard-sh/cardboard/internal/cmd/base"
	"github.com/cardboard-sh/cardboard/pkg/trello"
)

// ListCommand lists the cards on a list or board.
type ListCommand struct {
	*base.Command

	flagConfig  string
	flagList    string
	flagBoard   string
	flagFilter  string
	flagVerbose bool
}

func (c *ListCommand) Synopsis() string {
	return "List cards on a list or board"
}

func (c *ListCommand) Help() string {
	return `Usage: cardboard cards [options]

  Lists cards. Exactly one of -list or -board is required.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("cards", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.StringVar(&c.flagList, "list", "", "List ID to read cards from.")
	f.StringVar(&c.flagBoard, "board", "", "Board ID to read cards from.")
	f.StringVar(&c.flagFilter, "filter", trello.FilterOpen,
		"Card filter: all, open, closed.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging.")

	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if (c.flagList == "") == (c.flagBoard == "") {
		ui.Error("exactly one of -list or -board is required")
		return 1
	}

	client, err := c.Client(c.flagConfig, c.flagVerbose)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	ctx := context.Background()

	var cards []trello.Card
	if c.flagList != "" {
		cards, err = client.Lists().Cards(ctx, c.flagList, c.flagFilter)
	} else {
		cards, err = client.Boards().Cards(ctx, c.flagBoard)
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error listing cards: %v", err))
		return 1
	}

	if len(cards) == 0 {
		ui.Info("No cards found")
		return 0
	}

	for _, card := range cards {
		var extras []string
		if card.Due != nil {
			extras = append(extras, "due "+card.Due.Format(time.RFC3339))
		}
		if card.Badges.Comments > 0 {
			extras = append(extras, fmt.Sprintf("%d comments", card.Badges.Comments))
		}

		line := fmt.Sprintf("%s  %s", card.ID, card.Name)
		if len(extras) > 0 {
			line += "  [" + strings.Join(extras, ", ") + "]"
		}
		ui.Output(line)
	}

	return 0
}

// ShowCommand displays a single card.
type ShowCommand struct {
	*base.Command

	flagConfig     string
	flagChecklists bool
	flagActions    int
	flagVerbose    bool
}

func (c *ShowCommand) Synopsis() string {
	return "Show a card"
}

func (c *ShowCommand) Help() string {
	return `Usage: cardboard card <card-id> [options]

  Shows a card, optionally with its checklists and recent activity.` +
		c.Flags().Help()
}

func (c *ShowCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("card", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.BoolVar(&c.flagChecklists, "checklists", false, "Include the card's checklists.")
	f.IntVar(&c.flagActions, "actions", 0, "Include up to N recent actions.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging.")

	return f
}

func (c *ShowCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if flags.NArg() != 1 {
		ui.Error("exactly one card ID is required")
		return 1
	}
	cardID := flags.Arg(0)

	client, err := c.Client(c.flagConfig, c.flagVerbose)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	ctx := context.Background()

	card, err := client.Cards().Get(ctx, cardID)
	if err != nil {
		ui.Error(fmt.Sprintf("error fetching card: %v", err))
		return 1
	}

	ui.Output(fmt.Sprintf("%s  %s", card.ID, card.Name))
	if card.Desc != "" {
		ui.Output("  " + card.Desc)
	}
	if card.Due != nil {
		state := "due"
		if card.DueComplete {
			state = "done"
		}
		ui.Output(fmt.Sprintf("  %s %s", state, card.Due.Format(time.RFC3339)))
	}
	ui.Output("  " + card.ShortURL)

	if c.flagChecklists {
		checklists, err := client.Cards().Checklists(ctx, cardID)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching checklists: %v", err))
			return 1
		}
		for _, cl := range checklists {
			ui.Output(cl.Name + ":")
			for _, item := range cl.CheckItems {
				mark := " "
				if item.State == trello.CheckItemComplete {
					mark = "x"
				}
				ui.Output(fmt.Sprintf("  [%s] %s", mark, item.Name))
			}
		}
	}

	if c.flagActions > 0 {
		pager := client.Cards().Actions(cardID, trello.PageArgs{Limit: c.flagActions})
		page, _, err := pager.Next(ctx)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching actions: %v", err))
			return 1
		}
		ui.Output(fmt.Sprintf("Recent activity (%d):", len(page)))
		for _, a := range page {
			when := ""
			if a.Date != nil {
				when = a.Date.Format(time.RFC3339) + "  "
			}
			ui.Output(fmt.Sprintf("  %s%s", when, a.Type))
		}
	}

	return 0
}
