package trello

import (
	"context"
	"net/url"
)

// LabelService provides operations on labels.
type LabelService struct {
	client *Client
}

// Get fetches a label by id.
func (s *LabelService) Get(ctx context.Context, id string) (*Label, error) {
	var label Label
	if err := s.client.get(ctx, "/labels/"+url.PathEscape(id), nil, &label); err != nil {
		return nil, opErr("Labels.Get", err)
	}
	return &label, nil
}

// Create creates a label on a board.
func (s *LabelService) Create(ctx context.Context, boardID, name, color string) (*Label, error) {
	query := url.Values{}
	query.Set("idBoard", boardID)
	query.Set("name", name)
	query.Set("color", color)

	var label Label
	if err := s.client.post(ctx, "/labels", query, nil, &label); err != nil {
		return nil, opErr("Labels.Create", err)
	}
	return &label, nil
}

// UpdateLabelRequest holds the mutable fields of a label. Nil fields are
// left unchanged.
type UpdateLabelRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Update applies the non-nil fields of req to a label.
func (s *LabelService) Update(ctx context.Context, labelID string, req UpdateLabelRequest) (*Label, error) {
	var label Label
	path := "/labels/" + url.PathEscape(labelID)
	if err := s.client.put(ctx, path, nil, req, &label); err != nil {
		return nil, opErr("Labels.Update", err)
	}
	return &label, nil
}

// Delete removes a label from its board.
func (s *LabelService) Delete(ctx context.Context, labelID string) error {
	if err := s.client.delete(ctx, "/labels/"+url.PathEscape(labelID), nil); err != nil {
		return opErr("Labels.Delete", err)
	}
	return nil
}
