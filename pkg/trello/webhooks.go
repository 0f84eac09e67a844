package trello

import (
	"context"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
)

// WebhookService provides operations on webhooks.
type WebhookService struct {
	client *Client
}

// CreateWebhookRequest holds the fields accepted when registering a
// webhook. Trello will issue a HEAD probe against CallbackURL before
// accepting the registration.
type CreateWebhookRequest struct {
	CallbackURL string `json:"callbackURL"`
	IDModel     string `json:"idModel"`
	Description string `json:"description,omitempty"`
}

// Validate checks the request fields.
func (r CreateWebhookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CallbackURL, validation.Required, validation.By(validBaseURL)),
		validation.Field(&r.IDModel, validation.Required),
	)
}

// Create registers a webhook watching the given model.
func (s *WebhookService) Create(ctx context.Context, req CreateWebhookRequest) (*Webhook, error) {
	if err := req.Validate(); err != nil {
		return nil, opErrf("Webhooks.Create", err, "invalid webhook request")
	}

	var webhook Webhook
	if err := s.client.post(ctx, "/webhooks", nil, req, &webhook); err != nil {
		return nil, opErr("Webhooks.Create", err)
	}
	return &webhook, nil
}

// Get fetches a webhook by id.
func (s *WebhookService) Get(ctx context.Context, id string) (*Webhook, error) {
	var webhook Webhook
	if err := s.client.get(ctx, "/webhooks/"+url.PathEscape(id), nil, &webhook); err != nil {
		return nil, opErr("Webhooks.Get", err)
	}
	return &webhook, nil
}

// List returns the webhooks registered for the client's token.
func (s *WebhookService) List(ctx context.Context) ([]Webhook, error) {
	var webhooks []Webhook
	path := "/tokens/" + url.PathEscape(s.client.config.Token) + "/webhooks"
	if err := s.client.get(ctx, path, nil, &webhooks); err != nil {
		return nil, opErr("Webhooks.List", err)
	}
	return webhooks, nil
}

// UpdateWebhookRequest holds the mutable fields of a webhook. Nil fields
// are left unchanged.
type UpdateWebhookRequest struct {
	CallbackURL *string `json:"callbackURL,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// Update applies the non-nil fields of req to a webhook.
func (s *WebhookService) Update(ctx context.Context, id string, req UpdateWebhookRequest) (*Webhook, error) {
	var webhook Webhook
	path := "/webhooks/" + url.PathEscape(id)
	if err := s.client.put(ctx, path, nil, req, &webhook); err != nil {
		return nil, opErr("Webhooks.Update", err)
	}
	return &webhook, nil
}

// Delete unregisters a webhook.
func (s *WebhookService) Delete(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, "/webhooks/"+url.PathEscape(id), nil); err != nil {
		return opErr("Webhooks.Delete", err)
	}
	return nil
}

// DeleteAll unregisters multiple webhooks, continuing past individual
// failures and aggregating them.
func (s *WebhookService) DeleteAll(ctx context.Context, ids ...string) error {
	var merr *multierror.Error
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
