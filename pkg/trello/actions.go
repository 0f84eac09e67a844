package trello

import (
	"context"
	"net/url"
)

// ActionService provides operations on actions.
type ActionService struct {
	client *Client
}

// Get fetches a single action by id.
func (s *ActionService) Get(ctx context.Context, id string) (*Action, error) {
	var action Action
	if err := s.client.get(ctx, "/actions/"+url.PathEscape(id), nil, &action); err != nil {
		return nil, opErr("Actions.Get", err)
	}
	return &action, nil
}
