// Package config loads CLI configuration from an HCL file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/cardboard-sh/cardboard/pkg/trello"
)

// DefaultFileName is the config file looked up in the home directory
// when no -config flag is given.
const DefaultFileName = ".cardboard.hcl"

// Config is the CLI configuration file schema.
//
// Example:
//
//	credentials {
//	  key   = "abcdef0123456789"
//	  token = "..."
//	}
//
//	client {
//	  base_url        = "https://api.trello.com/1"
//	  timeout         = "30s"
//	  max_retries     = 3
//	  cache_ttl       = "30s"
//	  rate_per_window = 100
//	}
type Config struct {
	Credentials *Credentials `hcl:"credentials,block"`
	Client      *ClientBlock `hcl:"client,block"`
}

// Credentials holds the Trello key/token pair.
type Credentials struct {
	Key   string `hcl:"key"`
	Token string `hcl:"token"`
}

// ClientBlock tunes the underlying client.
type ClientBlock struct {
	BaseURL       string `hcl:"base_url,optional"`
	Timeout       string `hcl:"timeout,optional"`
	MaxRetries    int    `hcl:"max_retries,optional"`
	CacheTTL      string `hcl:"cache_ttl,optional"`
	CacheSize     int    `hcl:"cache_size,optional"`
	RatePerWindow int    `hcl:"rate_per_window,optional"`
}

// DefaultPath returns the default config file path in the user's home
// directory, or "" when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads the config file at path (when it exists), applies
// environment variable overrides, and returns a validated client
// config. A missing file is not an error as long as the environment
// supplies credentials.
func Load(fs afero.Fs, path string) (*trello.Config, error) {
	cfg, err := trello.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return cfg, nil
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if !exists {
		return cfg, nil
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := hclsimple.Decode(path, src, nil, &file); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	// Environment variables win over file values, so only fill fields
	// the environment left empty.
	if file.Credentials != nil {
		if cfg.Key == "" {
			cfg.Key = file.Credentials.Key
		}
		if cfg.Token == "" {
			cfg.Token = file.Credentials.Token
		}
	}

	if file.Client != nil {
		if err := applyClientBlock(cfg, file.Client); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	return cfg, nil
}

// applyClientBlock merges file tuning into cfg, leaving env-set values
// in place.
func applyClientBlock(cfg *trello.Config, block *ClientBlock) error {
	if block.BaseURL != "" && cfg.BaseURL == trello.DefaultBaseURL {
		cfg.BaseURL = block.BaseURL
	}
	if block.MaxRetries > 0 {
		cfg.MaxRetries = block.MaxRetries
	}
	if block.CacheSize > 0 {
		cfg.CacheSize = block.CacheSize
	}
	if block.RatePerWindow > 0 {
		cfg.RatePerWindow = block.RatePerWindow
	}

	if block.Timeout != "" {
		d, err := time.ParseDuration(block.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", block.Timeout, err)
		}
		cfg.Timeout = d
	}
	if block.CacheTTL != "" {
		d, err := time.ParseDuration(block.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache_ttl %q: %w", block.CacheTTL, err)
		}
		cfg.CacheTTL = d
	}

	return nil
}
