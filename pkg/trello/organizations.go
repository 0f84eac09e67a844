package trello

import (
	"context"
	"net/url"
)

// OrganizationService provides operations on organizations (workspaces).
type OrganizationService struct {
	client *Client
}

// Get fetches an organization by id or name.
func (s *OrganizationService) Get(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	if err := s.client.get(ctx, "/organizations/"+url.PathEscape(id), nil, &org); err != nil {
		return nil, opErr("Organizations.Get", err)
	}
	return &org, nil
}

// Boards returns the organization's boards, optionally filtered.
func (s *OrganizationService) Boards(ctx context.Context, orgID, filter string) ([]Board, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("filter", filter)
	}

	var boards []Board
	path := "/organizations/" + url.PathEscape(orgID) + "/boards"
	if err := s.client.get(ctx, path, query, &boards); err != nil {
		return nil, opErr("Organizations.Boards", err)
	}
	return boards, nil
}

// Members returns the organization's members.
func (s *OrganizationService) Members(ctx context.Context, orgID string) ([]Member, error) {
	var members []Member
	path := "/organizations/" + url.PathEscape(orgID) + "/members"
	if err := s.client.get(ctx, path, nil, &members); err != nil {
		return nil, opErr("Organizations.Members", err)
	}
	return members, nil
}
