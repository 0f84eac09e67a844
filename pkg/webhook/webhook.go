// Package webhook verifies and decodes Trello webhook callbacks.
//
// Trello signs each callback by base64-encoding an HMAC-SHA1 digest of
// the raw request body concatenated with the callback URL, keyed with
// the application's OAuth secret, and sends it in the X-Trello-Webhook
// header.
package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// SignatureHeader is the header carrying the callback signature.
const SignatureHeader = "X-Trello-Webhook"

// ErrInvalidSignature indicates the callback signature did not match.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Payload is the body of a webhook callback: the action that fired and
// the model being watched.
type Payload struct {
	Action json.RawMessage `json:"action"`
	Model  json.RawMessage `json:"model"`
}

// ActionSummary is the commonly needed slice of a callback's action.
type ActionSummary struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Date            string `json:"date"`
	IDMemberCreator string `json:"idMemberCreator"`
}

// Signature computes the expected callback signature for body delivered
// to callbackURL, keyed with the application secret.
func Signature(body []byte, callbackURL, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	mac.Write([]byte(callbackURL))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a callback signature in constant time.
func Verify(body []byte, callbackURL, secret, signature string) error {
	expected := Signature(body, callbackURL, secret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

// ParsePayload decodes a callback body.
func ParsePayload(r io.Reader) (*Payload, error) {
	var payload Payload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode webhook payload: %w", err)
	}
	return &payload, nil
}

// ActionSummary decodes the action portion of the payload.
func (p *Payload) ActionSummary() (*ActionSummary, error) {
	var summary ActionSummary
	if err := json.Unmarshal(p.Action, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode action: %w", err)
	}
	return &summary, nil
}

// Handler returns an http.Handler that verifies callback signatures and
// dispatches valid payloads to fn.
//
// Trello probes callback URLs with HEAD requests when a webhook is
// registered; the handler answers those with 200 and no body.
func Handler(secret, callbackURL string, logger hclog.Logger, fn func(*Payload)) http.Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			// Registration liveness probe.
			w.WriteHeader(http.StatusOK)
			return
		case http.MethodPost:
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Warn("failed to read webhook body", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		signature := r.Header.Get(SignatureHeader)
		if err := Verify(body, callbackURL, secret, signature); err != nil {
			logger.Warn("rejected webhook callback",
				"remote_addr", r.RemoteAddr,
				"error", err,
			)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		payload, err := ParsePayload(bytes.NewReader(body))
		if err != nil {
			logger.Warn("malformed webhook payload", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		fn(payload)
		w.WriteHeader(http.StatusOK)
	})
}
