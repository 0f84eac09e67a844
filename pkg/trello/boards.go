package trello

import (
	"context"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BoardService provides operations on boards.
type BoardService struct {
	client *Client
}

// Board visibility filters accepted by List and subresource filters.
const (
	FilterAll    = "all"
	FilterOpen   = "open"
	FilterClosed = "closed"
)

// Get fetches a board by id or short link.
func (s *BoardService) Get(ctx context.Context, id string) (*Board, error) {
	var board Board
	if err := s.client.get(ctx, "/boards/"+url.PathEscape(id), nil, &board); err != nil {
		return nil, opErr("Boards.Get", err)
	}
	return &board, nil
}

// List returns the boards visible to a member. Use "me" for the token's
// member. filter narrows the set (open, closed, starred, all).
func (s *BoardService) List(ctx context.Context, memberID, filter string) ([]Board, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("filter", filter)
	}

	var boards []Board
	path := "/members/" + url.PathEscape(memberID) + "/boards"
	if err := s.client.get(ctx, path, query, &boards); err != nil {
		return nil, opErr("Boards.List", err)
	}
	return boards, nil
}

// Lists returns the lists on a board, optionally filtered (open, closed,
// all).
func (s *BoardService) Lists(ctx context.Context, boardID, filter string) ([]List, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("filter", filter)
	}

	var lists []List
	path := "/boards/" + url.PathEscape(boardID) + "/lists"
	if err := s.client.get(ctx, path, query, &lists); err != nil {
		return nil, opErr("Boards.Lists", err)
	}
	return lists, nil
}

// Cards returns the cards on a board.
func (s *BoardService) Cards(ctx context.Context, boardID string) ([]Card, error) {
	var cards []Card
	path := "/boards/" + url.PathEscape(boardID) + "/cards"
	if err := s.client.get(ctx, path, nil, &cards); err != nil {
		return nil, opErr("Boards.Cards", err)
	}
	return cards, nil
}

// Members returns the members of a board.
func (s *BoardService) Members(ctx context.Context, boardID string) ([]Member, error) {
	var members []Member
	path := "/boards/" + url.PathEscape(boardID) + "/members"
	if err := s.client.get(ctx, path, nil, &members); err != nil {
		return nil, opErr("Boards.Members", err)
	}
	return members, nil
}

// Labels returns the labels defined on a board.
func (s *BoardService) Labels(ctx context.Context, boardID string) ([]Label, error) {
	var labels []Label
	path := "/boards/" + url.PathEscape(boardID) + "/labels"
	if err := s.client.get(ctx, path, nil, &labels); err != nil {
		return nil, opErr("Boards.Labels", err)
	}
	return labels, nil
}

// Actions returns a pager over the board's activity feed.
func (s *BoardService) Actions(boardID string, args PageArgs) *ActionPager {
	path := "/boards/" + url.PathEscape(boardID) + "/actions"
	return newActionPager(s.client, "Boards.Actions", path, args)
}

// CreateBoardRequest holds the fields accepted when creating a board.
type CreateBoardRequest struct {
	Name           string `json:"name"`
	Desc           string `json:"desc,omitempty"`
	IDOrganization string `json:"idOrganization,omitempty"`
	DefaultLists   *bool  `json:"defaultLists,omitempty"`
}

// Create creates a board.
func (s *BoardService) Create(ctx context.Context, req CreateBoardRequest) (*Board, error) {
	if err := validation.Validate(strings.TrimSpace(req.Name), validation.Required); err != nil {
		return nil, opErrf("Boards.Create", err, "board name")
	}

	var board Board
	if err := s.client.post(ctx, "/boards", nil, req, &board); err != nil {
		return nil, opErr("Boards.Create", err)
	}
	return &board, nil
}

// UpdateBoardRequest holds the mutable fields of a board. Nil fields are
// left unchanged.
type UpdateBoardRequest struct {
	Name   *string `json:"name,omitempty"`
	Desc   *string `json:"desc,omitempty"`
	Closed *bool   `json:"closed,omitempty"`
}

// Update applies the non-nil fields of req to a board.
func (s *BoardService) Update(ctx context.Context, boardID string, req UpdateBoardRequest) (*Board, error) {
	var board Board
	path := "/boards/" + url.PathEscape(boardID)
	if err := s.client.put(ctx, path, nil, req, &board); err != nil {
		return nil, opErr("Boards.Update", err)
	}
	return &board, nil
}

// Close archives a board.
func (s *BoardService) Close(ctx context.Context, boardID string) (*Board, error) {
	closed := true
	board, err := s.Update(ctx, boardID, UpdateBoardRequest{Closed: &closed})
	if err != nil {
		return nil, opErr("Boards.Close", err)
	}
	return board, nil
}

// AddMember adds a member to a board with the given role (normal,
// admin, observer).
func (s *BoardService) AddMember(ctx context.Context, boardID, memberID, role string) error {
	if role == "" {
		role = "normal"
	}

	query := url.Values{}
	query.Set("type", role)

	path := "/boards/" + url.PathEscape(boardID) + "/members/" + url.PathEscape(memberID)
	if err := s.client.put(ctx, path, query, nil, nil); err != nil {
		return opErr("Boards.AddMember", err)
	}
	return nil
}
