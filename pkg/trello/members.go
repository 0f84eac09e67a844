package trello

import (
	"context"
	"net/url"
)

// MemberService provides operations on members.
type MemberService struct {
	client *Client
}

// Me is the member id alias for the token's own member.
const Me = "me"

// Get fetches a member by id or username. Use Me for the token's member.
func (s *MemberService) Get(ctx context.Context, id string) (*Member, error) {
	var member Member
	if err := s.client.get(ctx, "/members/"+url.PathEscape(id), nil, &member); err != nil {
		return nil, opErr("Members.Get", err)
	}
	return &member, nil
}

// Boards returns the member's boards, optionally filtered.
func (s *MemberService) Boards(ctx context.Context, memberID, filter string) ([]Board, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("filter", filter)
	}

	var boards []Board
	path := "/members/" + url.PathEscape(memberID) + "/boards"
	if err := s.client.get(ctx, path, query, &boards); err != nil {
		return nil, opErr("Members.Boards", err)
	}
	return boards, nil
}

// Organizations returns the organizations the member belongs to.
func (s *MemberService) Organizations(ctx context.Context, memberID string) ([]Organization, error) {
	var orgs []Organization
	path := "/members/" + url.PathEscape(memberID) + "/organizations"
	if err := s.client.get(ctx, path, nil, &orgs); err != nil {
		return nil, opErr("Members.Organizations", err)
	}
	return orgs, nil
}

// Cards returns the member's open cards.
func (s *MemberService) Cards(ctx context.Context, memberID string) ([]Card, error) {
	var cards []Card
	path := "/members/" + url.PathEscape(memberID) + "/cards"
	if err := s.client.get(ctx, path, nil, &cards); err != nil {
		return nil, opErr("Members.Cards", err)
	}
	return cards, nil
}

// Notifications returns a page of the member's notifications.
func (s *MemberService) Notifications(ctx context.Context, memberID string, args PageArgs) ([]Notification, error) {
	var notifications []Notification
	path := "/members/" + url.PathEscape(memberID) + "/notifications"
	if err := s.client.get(ctx, path, args.values(), &notifications); err != nil {
		return nil, opErr("Members.Notifications", err)
	}
	return notifications, nil
}
