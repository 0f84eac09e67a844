package trello

import (
	"context"
	"net/url"
)

// ChecklistService provides operations on checklists.
type ChecklistService struct {
	client *Client
}

// Get fetches a checklist by id.
func (s *ChecklistService) Get(ctx context.Context, id string) (*Checklist, error) {
	var checklist Checklist
	if err := s.client.get(ctx, "/checklists/"+url.PathEscape(id), nil, &checklist); err != nil {
		return nil, opErr("Checklists.Get", err)
	}
	return &checklist, nil
}

// Items returns the items on a checklist.
func (s *ChecklistService) Items(ctx context.Context, checklistID string) ([]CheckItem, error) {
	var items []CheckItem
	path := "/checklists/" + url.PathEscape(checklistID) + "/checkItems"
	if err := s.client.get(ctx, path, nil, &items); err != nil {
		return nil, opErr("Checklists.Items", err)
	}
	return items, nil
}

// AddItem appends an item to a checklist.
func (s *ChecklistService) AddItem(ctx context.Context, checklistID, name string) (*CheckItem, error) {
	query := url.Values{}
	query.Set("name", name)

	var item CheckItem
	path := "/checklists/" + url.PathEscape(checklistID) + "/checkItems"
	if err := s.client.post(ctx, path, query, nil, &item); err != nil {
		return nil, opErr("Checklists.AddItem", err)
	}
	return &item, nil
}

// SetItemState marks an item complete or incomplete. The item state
// endpoint lives under the owning card, so cardID is required.
func (s *ChecklistService) SetItemState(ctx context.Context, cardID, itemID, state string) (*CheckItem, error) {
	query := url.Values{}
	query.Set("state", state)

	var item CheckItem
	path := "/cards/" + url.PathEscape(cardID) + "/checkItem/" + url.PathEscape(itemID)
	if err := s.client.put(ctx, path, query, nil, &item); err != nil {
		return nil, opErr("Checklists.SetItemState", err)
	}
	return &item, nil
}

// Delete removes a checklist.
func (s *ChecklistService) Delete(ctx context.Context, checklistID string) error {
	if err := s.client.delete(ctx, "/checklists/"+url.PathEscape(checklistID), nil); err != nil {
		return opErr("Checklists.Delete", err)
	}
	return nil
}
