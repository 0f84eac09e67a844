package trello

import (
	"context"
	"net/url"
	"time"
)

// CardService provides operations on cards.
type CardService struct {
	client *Client
}

// Get fetches a card by id or short link.
func (s *CardService) Get(ctx context.Context, id string) (*Card, error) {
	var card Card
	if err := s.client.get(ctx, "/cards/"+url.PathEscape(id), nil, &card); err != nil {
		return nil, opErr("Cards.Get", err)
	}
	return &card, nil
}

// CreateCardRequest holds the fields accepted when creating a card.
type CreateCardRequest struct {
	Name      string     `json:"name"`
	Desc      string     `json:"desc,omitempty"`
	IDList    string     `json:"idList"`
	Due       *time.Time `json:"due,omitempty"`
	Pos       string     `json:"pos,omitempty"`
	IDMembers []string   `json:"idMembers,omitempty"`
	IDLabels  []string   `json:"idLabels,omitempty"`
}

// Create creates a card on a list.
func (s *CardService) Create(ctx context.Context, req CreateCardRequest) (*Card, error) {
	var card Card
	if err := s.client.post(ctx, "/cards", nil, req, &card); err != nil {
		return nil, opErr("Cards.Create", err)
	}
	return &card, nil
}

// UpdateCardRequest holds the mutable fields of a card. Nil fields are
// left unchanged.
type UpdateCardRequest struct {
	Name        *string    `json:"name,omitempty"`
	Desc        *string    `json:"desc,omitempty"`
	Closed      *bool      `json:"closed,omitempty"`
	Due         *time.Time `json:"due,omitempty"`
	DueComplete *bool      `json:"dueComplete,omitempty"`
	IDList      *string    `json:"idList,omitempty"`
	Pos         *string    `json:"pos,omitempty"`
}

// Update applies the non-nil fields of req to a card.
func (s *CardService) Update(ctx context.Context, cardID string, req UpdateCardRequest) (*Card, error) {
	var card Card
	path := "/cards/" + url.PathEscape(cardID)
	if err := s.client.put(ctx, path, nil, req, &card); err != nil {
		return nil, opErr("Cards.Update", err)
	}
	return &card, nil
}

// Delete permanently deletes a card. Prefer Update with Closed for an
// undoable archive.
func (s *CardService) Delete(ctx context.Context, cardID string) error {
	if err := s.client.delete(ctx, "/cards/"+url.PathEscape(cardID), nil); err != nil {
		return opErr("Cards.Delete", err)
	}
	return nil
}

// Move moves a card to another list.
func (s *CardService) Move(ctx context.Context, cardID, listID string) (*Card, error) {
	return s.Update(ctx, cardID, UpdateCardRequest{IDList: &listID})
}

// AddComment posts a comment on a card and returns the comment action.
func (s *CardService) AddComment(ctx context.Context, cardID, text string) (*Action, error) {
	query := url.Values{}
	query.Set("text", text)

	var action Action
	path := "/cards/" + url.PathEscape(cardID) + "/actions/comments"
	if err := s.client.post(ctx, path, query, nil, &action); err != nil {
		return nil, opErr("Cards.AddComment", err)
	}
	return &action, nil
}

// AddLabel attaches an existing label to a card.
func (s *CardService) AddLabel(ctx context.Context, cardID, labelID string) error {
	query := url.Values{}
	query.Set("value", labelID)

	path := "/cards/" + url.PathEscape(cardID) + "/idLabels"
	if err := s.client.post(ctx, path, query, nil, nil); err != nil {
		return opErr("Cards.AddLabel", err)
	}
	return nil
}

// Checklists returns the checklists on a card.
func (s *CardService) Checklists(ctx context.Context, cardID string) ([]Checklist, error) {
	var checklists []Checklist
	path := "/cards/" + url.PathEscape(cardID) + "/checklists"
	if err := s.client.get(ctx, path, nil, &checklists); err != nil {
		return nil, opErr("Cards.Checklists", err)
	}
	return checklists, nil
}

// Actions returns a pager over the card's activity feed.
func (s *CardService) Actions(cardID string, args PageArgs) *ActionPager {
	path := "/cards/" + url.PathEscape(cardID) + "/actions"
	return newActionPager(s.client, "Cards.Actions", path, args)
}
