package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/profile-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvAPIURL, config.EnvAPICookie, config.EnvSessionCookie, config.EnvSelectorsFile} {
		t.Setenv(key, "")
	}
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := resolveConfig(config.Config{}, "")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestResolveConfig_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvAPIURL, "https://env.example.com")
	t.Setenv(config.EnvSessionCookie, "env-session")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_url": "https://file.example.com", "concurrency": 8}`), 0644))

	cfg, err := resolveConfig(config.Config{}, path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.APIURL)
	assert.Equal(t, "env-session", cfg.SessionCookie)
	assert.Equal(t, 8, cfg.Concurrency)

	cfg, err = resolveConfig(config.Config{APIURL: "https://flag.example.com", Concurrency: 2}, path)
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example.com", cfg.APIURL)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestResolveConfig_Errors(t *testing.T) {
	clearEnv(t)

	_, err := resolveConfig(config.Config{}, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to load config")

	_, err = resolveConfig(config.Config{APIURL: "not a url"}, "")
	assert.ErrorContains(t, err, "invalid 'api_url'")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout_seconds": -1}`), 0644))
	_, err = resolveConfig(config.Config{}, path)
	assert.ErrorContains(t, err, "timeout_seconds")
}
