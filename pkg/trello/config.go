package trello

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the Trello REST API root.
const DefaultBaseURL = "https://api.trello.com/1"

// Config contains configuration for the Trello client.
//
// Credentials are the static key/token pair issued by Trello. They are
// appended to every request as query parameters and are never logged or
// used in cache keys.
type Config struct {
	// BaseURL is the API root. Default: https://api.trello.com/1
	BaseURL string `env:"TRELLO_BASE_URL"`

	// Key is the Trello application key.
	Key string `env:"TRELLO_API_KEY"`

	// Token is the member token authorizing the application.
	Token string `env:"TRELLO_TOKEN"`

	// Timeout for API requests. Default: 30 seconds.
	Timeout time.Duration `env:"TRELLO_TIMEOUT"`

	// MaxRetries for failed requests. Default: 3. Set a negative value
	// to disable retries.
	MaxRetries int `env:"TRELLO_MAX_RETRIES"`

	// RetryDelay is the initial backoff between retries. Default: 1 second.
	RetryDelay time.Duration `env:"TRELLO_RETRY_DELAY"`

	// MaxBackoff caps the backoff between retries. Default: 30 seconds.
	MaxBackoff time.Duration `env:"TRELLO_MAX_BACKOFF"`

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development against a local stub.
	TLSVerify *bool `env:"TRELLO_TLS_VERIFY"`

	// RatePerWindow and RateWindow describe the client-side rate limit.
	// Default: 100 requests per 10 seconds, Trello's published limit per
	// token.
	RatePerWindow int           `env:"TRELLO_RATE_PER_WINDOW"`
	RateWindow    time.Duration `env:"TRELLO_RATE_WINDOW"`

	// CacheSize is the maximum number of cached GET responses.
	// Default: 512. Set a negative value to disable caching.
	CacheSize int `env:"TRELLO_CACHE_SIZE"`

	// CacheTTL is how long cached responses stay fresh. Default: 30s.
	CacheTTL time.Duration `env:"TRELLO_CACHE_TTL"`

	// Logger receives request/response logging. Default: a null logger.
	Logger hclog.Logger `env:"-"`

	// HTTPClient overrides the HTTP client. When nil one is built from
	// Timeout and TLSVerify.
	HTTPClient *http.Client `env:"-"`
}

// DefaultConfig returns a Config with defaults applied. Credentials must
// still be supplied by the caller.
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		RetryDelay:    1 * time.Second,
		MaxBackoff:    30 * time.Second,
		TLSVerify:     &tlsVerify,
		RatePerWindow: 100,
		RateWindow:    10 * time.Second,
		CacheSize:     512,
		CacheTTL:      30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from TRELLO_* environment variables on
// top of the defaults.
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields from DefaultConfig. Counters
// that are meaningful at zero (MaxRetries, CacheSize) use a negative
// value as the explicit off switch, normalized to zero here.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaults.MaxRetries
	} else if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaults.RetryDelay
	}
	if c.MaxBackoff == 0 {
		c.MaxBackoff = defaults.MaxBackoff
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.RatePerWindow == 0 {
		c.RatePerWindow = defaults.RatePerWindow
	}
	if c.RateWindow == 0 {
		c.RateWindow = defaults.RateWindow
	}
	if c.CacheSize == 0 {
		c.CacheSize = defaults.CacheSize
	} else if c.CacheSize < 0 {
		c.CacheSize = 0
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaults.CacheTTL
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Key == "" || c.Token == "" {
		return ErrMissingCredentials
	}

	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(validBaseURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0)).Exclusive()),
		validation.Field(&c.MaxRetries, validation.Min(0)),
		validation.Field(&c.RetryDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.RatePerWindow, validation.Min(1)),
		validation.Field(&c.RateWindow, validation.Min(time.Duration(0)).Exclusive()),
		validation.Field(&c.CacheSize, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}

	return nil
}

func validBaseURL(value interface{}) error {
	raw, _ := value.(string)
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https scheme, got: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}
	return nil
}

// NewHTTPClient creates a configured HTTP client for this config.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}
