package trello

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchService provides the search endpoints.
type SearchService struct {
	client *Client
}

// SearchArgs narrows a search query.
type SearchArgs struct {
	// ModelTypes restricts the search to the given types (boards, cards,
	// members, organizations). Empty means all.
	ModelTypes []string

	// BoardsLimit, CardsLimit cap per-type result counts.
	BoardsLimit int
	CardsLimit  int

	// IDBoards restricts card results to the given boards; the special
	// value "mine" searches the member's boards.
	IDBoards []string

	// Partial enables prefix matching on words.
	Partial bool
}

// Search runs a query across boards, cards, members, and organizations.
func (s *SearchService) Search(ctx context.Context, query string, args SearchArgs) (*SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)

	if len(args.ModelTypes) > 0 {
		q.Set("modelTypes", strings.Join(args.ModelTypes, ","))
	}
	if args.BoardsLimit > 0 {
		q.Set("boards_limit", strconv.Itoa(args.BoardsLimit))
	}
	if args.CardsLimit > 0 {
		q.Set("cards_limit", strconv.Itoa(args.CardsLimit))
	}
	if len(args.IDBoards) > 0 {
		q.Set("idBoards", strings.Join(args.IDBoards, ","))
	}
	if args.Partial {
		q.Set("partial", "true")
	}

	var result SearchResult
	if err := s.client.get(ctx, "/search", q, &result); err != nil {
		return nil, opErr("Search.Search", err)
	}
	return &result, nil
}

// Members searches members by name or username.
func (s *SearchService) Members(ctx context.Context, query string, limit int) ([]Member, error) {
	q := url.Values{}
	q.Set("query", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var members []Member
	if err := s.client.get(ctx, "/search/members", q, &members); err != nil {
		return nil, opErr("Search.Members", err)
	}
	return members, nil
}
