// Package trello implements a resource-oriented client for the Trello
// REST API.
//
// The client exposes two surfaces:
//
//  1. Typed services (Boards, Cards, Lists, ...) with concrete request
//     and response structs.
//
//  2. A dynamic resource layer (Client.Resource) driven by per-resource
//     descriptors declaring the URI stub, subresources, parent resources,
//     and filterable subresources of each resource type.
//
// All requests flow through a single path that applies client-side rate
// limiting, response caching for GETs, retry with exponential backoff,
// and structured logging.
package trello

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	"github.com/cardboard-sh/cardboard/internal/version"
	"github.com/cardboard-sh/cardboard/pkg/cache"
)

// Client is a Trello API client. Create one with New; the zero value is
// not usable.
type Client struct {
	config  *Config
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	logger  hclog.Logger
}

// New creates a Client from the given configuration.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cfg.NewHTTPClient()
	}

	// Token bucket sized to Trello's per-token window: RatePerWindow
	// requests spread over RateWindow, with the full window available as
	// burst.
	limit := rate.Limit(float64(cfg.RatePerWindow) / cfg.RateWindow.Seconds())

	c := &Client{
		config:  cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, cfg.RatePerWindow),
		logger:  cfg.Logger.Named("trello-client"),
	}

	if cfg.CacheSize > 0 {
		c.cache = cache.New(cfg.CacheSize, cfg.CacheTTL,
			cfg.Logger.Named("response-cache"))
	}

	return c, nil
}

// CacheStats returns response cache hit/miss counters. Zero values are
// returned when caching is disabled.
func (c *Client) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}
	return c.cache.Stats()
}

// Service accessors.

func (c *Client) Boards() *BoardService { return &BoardService{client: c} }

func (c *Client) Lists() *ListService { return &ListService{client: c} }

func (c *Client) Cards() *CardService { return &CardService{client: c} }

func (c *Client) Members() *MemberService { return &MemberService{client: c} }

func (c *Client) Organizations() *OrganizationService { return &OrganizationService{client: c} }

func (c *Client) Actions() *ActionService { return &ActionService{client: c} }

func (c *Client) Checklists() *ChecklistService { return &ChecklistService{client: c} }

func (c *Client) Labels() *LabelService { return &LabelService{client: c} }

func (c *Client) Search() *SearchService { return &SearchService{client: c} }

func (c *Client) Webhooks() *WebhookService { return &WebhookService{client: c} }

// Resource returns a dynamic client for the named resource type, driven
// by its registered descriptor.
func (c *Client) Resource(name string) (*ResourceClient, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, opErr("Resource", err)
	}
	return &ResourceClient{client: c, desc: d}, nil
}

// InstanceURL returns the canonical, credential-free URL for a resource
// instance, e.g. https://api.trello.com/1/boards/abc123.
func (c *Client) InstanceURL(stub, id string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(c.config.BaseURL, "/"), stub, url.PathEscape(id))
}

// get performs a GET request and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

// post performs a POST request with an optional JSON body.
func (c *Client) post(ctx context.Context, path string, query url.Values, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, result)
}

// put performs a PUT request with an optional JSON body.
func (c *Client) put(ctx context.Context, path string, query url.Values, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, query, body, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

// do executes an API request with rate limiting, caching, and retries.
//
// path must begin with "/". query must not contain credentials; the
// key/token pair is appended here, after the cache key is derived, so
// credentials never reach logs or cache keys.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	canonical := c.canonicalURL(path, query)
	requestID := uuid.NewString()

	// Serve warm GETs from the cache without touching the network or the
	// rate limiter.
	if method == http.MethodGet && c.cache != nil {
		if data, ok := c.cache.Get(canonical); ok {
			c.logger.Debug("cache hit",
				"method", method,
				"url", canonical,
				"request_id", requestID,
			)
			return decodeBody(data, result)
		}
	}

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	requestURL := c.authedURL(path, query)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.RetryDelay
	policy.MaxInterval = c.config.MaxBackoff
	policy.MaxElapsedTime = 0

	start := time.Now()

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := policy.NextBackOff()
			if ra, ok := retryAfter(lastErr); ok && ra > wait {
				wait = ra
			}
			if wait > c.config.MaxBackoff {
				wait = c.config.MaxBackoff
			}

			c.logger.Debug("retrying request",
				"method", method,
				"url", canonical,
				"request_id", requestID,
				"attempt", attempt,
				"backoff", wait,
			)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}

		data, err := c.roundTrip(ctx, method, requestURL, bodyBytes, requestID)
		if err != nil {
			lastErr = err
			if !retryable(method, err) {
				return err
			}
			continue
		}

		c.logger.Debug("request completed",
			"method", method,
			"url", canonical,
			"request_id", requestID,
			"attempts", attempt+1,
			"duration_ms", time.Since(start).Milliseconds(),
		)

		if method == http.MethodGet {
			if c.cache != nil {
				c.cache.Set(canonical, data)
			}
		} else if c.cache != nil {
			// A successful mutation makes any cached view of this
			// resource stale.
			c.cache.InvalidatePrefix(c.invalidationPrefix(path, query))
		}

		return decodeBody(data, result)
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

// roundTrip executes a single HTTP exchange and returns the response body.
func (c *Client) roundTrip(ctx context.Context, method, requestURL string, body []byte, requestID string) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cardboard/"+version.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
			RequestID:  requestID,
		}
		if ra := parseRetryAfter(resp.Header.Get("Retry-After")); ra > 0 {
			return nil, &retryAfterError{err: apiErr, after: ra}
		}
		return nil, apiErr
	}

	return respBody, nil
}

// canonicalURL builds the credential-free URL used for cache keys and
// logging. The token endpoints embed the token in the URL path, so it is
// redacted here as well.
func (c *Client) canonicalURL(path string, query url.Values) string {
	base := strings.TrimSuffix(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		base += "?" + query.Encode()
	}
	return strings.ReplaceAll(base, url.PathEscape(c.config.Token), "<token>")
}

// authedURL builds the request URL with credentials appended.
func (c *Client) authedURL(path string, query url.Values) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("key", c.config.Key)
	q.Set("token", c.config.Token)
	return strings.TrimSuffix(c.config.BaseURL, "/") + path + "?" + q.Encode()
}

// invalidationPrefix derives the cache prefix purged by a mutation of
// path: the resource instance URL, so /boards/abc purges /boards/abc and
// everything beneath it.
func (c *Client) invalidationPrefix(path string, _ url.Values) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) >= 2 {
		segments = segments[:2]
	}
	return strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.Join(segments, "/")
}

// decodeBody decodes a JSON body into result, tolerating empty bodies.
func decodeBody(data []byte, result interface{}) error {
	if result == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// retryable reports whether the failed request should be retried.
//
// Transport errors are retried only for GETs, where replay is safe. Once
// a response was received, only 429 and 5xx are retried, and 5xx only for
// idempotent methods.
func retryable(method string, err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if apiErr.StatusCode >= 500 {
			return method == http.MethodGet ||
				method == http.MethodPut ||
				method == http.MethodDelete
		}
		return false
	}
	return method == http.MethodGet
}

// retryAfterError carries a server-requested retry delay alongside the
// underlying API error.
type retryAfterError struct {
	err   *APIError
	after time.Duration
}

func (e *retryAfterError) Error() string { return e.err.Error() }
func (e *retryAfterError) Unwrap() error { return e.err }

// retryAfter extracts a Retry-After delay from err, if present.
func retryAfter(err error) (time.Duration, bool) {
	var ra *retryAfterError
	if errors.As(err, &ra) {
		return ra.after, true
	}
	return 0, false
}

// parseRetryAfter parses a Retry-After header in either delta-seconds or
// HTTP-date form.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
