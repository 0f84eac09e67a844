package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
credentials {
  key   = "file-key"
  token = "file-token"
}

client {
  timeout         = "10s"
  max_retries     = 5
  cache_ttl       = "2m"
  rate_per_window = 50
}
`

func writeConfig(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o600))
}

func TestLoad_FromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/home/user/.cardboard.hcl", testConfig)

	cfg, err := Load(fs, "/home/user/.cardboard.hcl")
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Key)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.RatePerWindow)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "env-key")

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/home/user/.cardboard.hcl", testConfig)

	cfg, err := Load(fs, "/home/user/.cardboard.hcl")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Key, "environment wins over file")
	assert.Equal(t, "file-token", cfg.Token, "file fills what env left empty")
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "env-key")
	t.Setenv("TRELLO_TOKEN", "env-token")

	cfg, err := Load(afero.NewMemMapFs(), "/nonexistent/.cardboard.hcl")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Key)
	assert.Equal(t, "env-token", cfg.Token)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoad_BadHCL(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/home/user/.cardboard.hcl", "credentials {")

	_, err := Load(fs, "/home/user/.cardboard.hcl")
	require.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/home/user/.cardboard.hcl", `
credentials {
  key   = "k"
  token = "t"
}

client {
  timeout = "not-a-duration"
}
`)

	_, err := Load(fs, "/home/user/.cardboard.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}
