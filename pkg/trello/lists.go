package trello

import (
	"context"
	"net/url"
)

// ListService provides operations on lists.
type ListService struct {
	client *Client
}

// Get fetches a list by id.
func (s *ListService) Get(ctx context.Context, id string) (*List, error) {
	var list List
	if err := s.client.get(ctx, "/lists/"+url.PathEscape(id), nil, &list); err != nil {
		return nil, opErr("Lists.Get", err)
	}
	return &list, nil
}

// Cards returns the cards on a list, optionally filtered (open, closed,
// all).
func (s *ListService) Cards(ctx context.Context, listID, filter string) ([]Card, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("filter", filter)
	}

	var cards []Card
	path := "/lists/" + url.PathEscape(listID) + "/cards"
	if err := s.client.get(ctx, path, query, &cards); err != nil {
		return nil, opErr("Lists.Cards", err)
	}
	return cards, nil
}

// Actions returns a pager over the list's activity feed.
func (s *ListService) Actions(listID string, args PageArgs) *ActionPager {
	path := "/lists/" + url.PathEscape(listID) + "/actions"
	return newActionPager(s.client, "Lists.Actions", path, args)
}

// CreateListRequest holds the fields accepted when creating a list.
type CreateListRequest struct {
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
	Pos     string `json:"pos,omitempty"` // "top", "bottom", or a number
}

// Create creates a list on a board.
func (s *ListService) Create(ctx context.Context, req CreateListRequest) (*List, error) {
	var list List
	if err := s.client.post(ctx, "/lists", nil, req, &list); err != nil {
		return nil, opErr("Lists.Create", err)
	}
	return &list, nil
}

// UpdateListRequest holds the mutable fields of a list. Nil fields are
// left unchanged.
type UpdateListRequest struct {
	Name   *string `json:"name,omitempty"`
	Closed *bool   `json:"closed,omitempty"`
	Pos    *string `json:"pos,omitempty"`
}

// Update applies the non-nil fields of req to a list.
func (s *ListService) Update(ctx context.Context, listID string, req UpdateListRequest) (*List, error) {
	var list List
	path := "/lists/" + url.PathEscape(listID)
	if err := s.client.put(ctx, path, nil, req, &list); err != nil {
		return nil, opErr("Lists.Update", err)
	}
	return &list, nil
}

// Archive closes a list.
func (s *ListService) Archive(ctx context.Context, listID string) (*List, error) {
	closed := true
	return s.Update(ctx, listID, UpdateListRequest{Closed: &closed})
}

// Move moves a list to another board.
func (s *ListService) Move(ctx context.Context, listID, boardID string) (*List, error) {
	query := url.Values{}
	query.Set("value", boardID)

	var list List
	path := "/lists/" + url.PathEscape(listID) + "/idBoard"
	if err := s.client.put(ctx, path, query, nil, &list); err != nil {
		return nil, opErr("Lists.Move", err)
	}
	return &list, nil
}
