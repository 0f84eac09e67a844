// Package resource implements the dynamic resource command, exposing
// the descriptor-driven layer from the command line.
package resource

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/cardboard-sh/cardboard/internal/cmd/base"
	"github.com/cardboard-sh/cardboard/pkg/trello"
)

// Command walks a resource instance through its descriptor: fetch the
// instance, its subresources, or its parents.
type Command struct {
	*base.Command

	flagConfig  string
	flagSub     string
	flagParents string
	flagFilter  string
	flagField   string
	flagVerbose bool
}

func (c *Command) Synopsis() string {
	return "Inspect any resource through its descriptor"
}

func (c *Command) Help() string {
	return `Usage: cardboard resource <type> <id> [options]

  Fetches a resource instance of the given type. With -sub, fetches the
  named subresources and prints the discovered instance URLs. With
  -parents, walks up to the owning resources. With -filter, filters a
  single subresource server-side.

  Known types: ` + strings.Join(trello.ValidResources(), ", ") +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("resource", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "", "Path to the config file.")
	f.StringVar(&c.flagSub, "sub", "",
		"Comma-separated subresources to fetch.")
	f.StringVar(&c.flagParents, "parents", "",
		"Comma-separated parents to fetch; empty fetches all declared parents when set to \"all\".")
	f.StringVar(&c.flagFilter, "filter", "",
		"Filter spec for a single subresource, as <subresource>=<filters>.")
	f.StringVar(&c.flagField, "field", "",
		"Narrow parent responses to a single field.")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Enable debug logging.")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if flags.NArg() != 2 {
		ui.Error("a resource type and an ID are required")
		return 1
	}
	typeName, id := flags.Arg(0), flags.Arg(1)

	client, err := c.Client(c.flagConfig, c.flagVerbose)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	rc, err := client.Resource(typeName)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ctx := context.Background()

	switch {
	case c.flagFilter != "":
		parts := strings.SplitN(c.flagFilter, "=", 2)
		if len(parts) != 2 {
			ui.Error("filter must be of the form <subresource>=<filters>")
			return 1
		}
		results, err := rc.FilterSubresource(ctx, id, parts[0], strings.Split(parts[1], ",")...)
		if err != nil {
			ui.Error(fmt.Sprintf("error filtering subresource: %v", err))
			return 1
		}
		printURLMap(ui.Output, results)

	case c.flagSub != "":
		names := strings.Split(c.flagSub, ",")
		results, err := rc.Subresources(ctx, id, names...)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching subresources: %v", err))
			if len(results) == 0 {
				return 1
			}
		}
		printURLMap(ui.Output, results)

	case c.flagParents != "":
		var parents []string
		if c.flagParents != "all" {
			parents = strings.Split(c.flagParents, ",")
		}
		results, err := rc.ParentResources(ctx, id, parents, c.flagField)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching parents: %v", err))
			if len(results) == 0 {
				return 1
			}
		}
		printURLMap(ui.Output, results)

	default:
		obj, err := rc.Get(ctx, id)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching resource: %v", err))
			return 1
		}
		printObject(ui.Output, obj)
	}

	return 0
}

func printURLMap(out func(string), results map[string][]string) {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		out(k + ":")
		for _, u := range results[k] {
			out("  " + u)
		}
	}
}

func printObject(out func(string), obj map[string]interface{}) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		out(fmt.Sprintf("%s: %v", k, obj[k]))
	}
}
