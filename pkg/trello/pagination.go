package trello

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MaxPageLimit is the largest page size Trello accepts.
const MaxPageLimit = 1000

// defaultPageLimit is used when the caller does not set one.
const defaultPageLimit = 50

// PageArgs controls id-cursor paging on activity-style collections.
// Trello pages actions and notifications by object id: Before returns
// objects older than the given id, Since returns objects newer than it.
type PageArgs struct {
	// Limit is the page size, capped at MaxPageLimit.
	Limit int

	// Before restricts results to objects with ids older than this id.
	Before string

	// Since restricts results to objects with ids newer than this id.
	Since string
}

// values renders the page arguments as query parameters.
func (p PageArgs) values() url.Values {
	q := url.Values{}

	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	q.Set("limit", strconv.Itoa(limit))

	if p.Before != "" {
		q.Set("before", p.Before)
	}
	if p.Since != "" {
		q.Set("since", p.Since)
	}
	return q
}

// ActionPager walks an action feed newest to oldest, one page per Next
// call. The oldest id of each page becomes the before-cursor of the
// next, so pages never overlap.
type ActionPager struct {
	client *Client
	path   string
	args   PageArgs
	done   bool
	op     string
}

// newActionPager builds a pager over the action-style collection at
// path, e.g. /boards/{id}/actions.
func newActionPager(c *Client, op, path string, args PageArgs) *ActionPager {
	return &ActionPager{client: c, path: path, args: args, op: op}
}

// Next fetches the next page. done is true once the feed is exhausted;
// after that Next returns an empty page.
func (p *ActionPager) Next(ctx context.Context) (page []Action, done bool, err error) {
	if p.done {
		return nil, true, nil
	}

	limit := p.args.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	if err := p.client.get(ctx, p.path, p.args.values(), &page); err != nil {
		return nil, false, opErr(p.op, err)
	}

	// A short page means the feed is drained.
	if len(page) < limit {
		p.done = true
	} else {
		p.args.Before = page[len(page)-1].ID
	}

	return page, p.done, nil
}

// All drains the feed into a single slice. maxPages bounds the walk as a
// safety cap; zero means no cap.
func (p *ActionPager) All(ctx context.Context, maxPages int) ([]Action, error) {
	var all []Action
	pages := 0

	for {
		page, done, err := p.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if done {
			return all, nil
		}

		pages++
		if maxPages > 0 && pages >= maxPages {
			return all, fmt.Errorf("%s: page cap (%d) reached before feed was drained", p.op, maxPages)
		}
	}
}
