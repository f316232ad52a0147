package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/profile-agent/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	tmpFile := writeFile(t, "config.json", `{
		"url": "https://www.linkedin.com/in/jane/",
		"api_url": "https://api.example.com/v1",
		"use_browser": true,
		"timeout_seconds": 45,
		"verbose": true
	}`)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://www.linkedin.com/in/jane/", cfg.URL)
	assert.Equal(t, "https://api.example.com/v1", cfg.APIURL)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, 45, cfg.TimeoutSeconds)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_YAML(t *testing.T) {
	tmpFile := writeFile(t, "config.yaml", `
url: https://www.linkedin.com/in/jane/
api_url: https://api.example.com/v1
use_browser: true
watch_interval_seconds: 5
requests_per_minute: 6
`)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "https://www.linkedin.com/in/jane/", cfg.URL)
	assert.Equal(t, "https://api.example.com/v1", cfg.APIURL)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, 5, cfg.WatchInterval)
	assert.Equal(t, 6, cfg.RequestsPerMinute)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := writeFile(t, "config.yml", "url: [unclosed")

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	htmlFile := writeFile(t, "page.html", "<html></html>")

	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{name: "valid", cfg: Config{HTML: htmlFile, APIURL: "https://api.example.com"}},
		{name: "mutually exclusive", cfg: Config{HTML: htmlFile, URL: "https://x.test"}, errMsg: "mutually exclusive"},
		{name: "negative timeout", cfg: Config{TimeoutSeconds: -1}, errMsg: "non-negative"},
		{name: "negative concurrency", cfg: Config{Concurrency: -2}, errMsg: "non-negative"},
		{name: "negative watch", cfg: Config{WatchAttempts: -1}, errMsg: "non-negative"},
		{name: "negative rate disables throttling", cfg: Config{RequestsPerMinute: -1}},
		{name: "bad api url", cfg: Config{APIURL: "api.example.com"}, errMsg: "invalid 'api_url'"},
		{name: "missing html", cfg: Config{HTML: "/nonexistent/page.html"}, errMsg: "html file not found"},
		{name: "missing selectors", cfg: Config{SelectorsFile: "/nonexistent/sel.json"}, errMsg: "selectors file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		URL:            "https://www.linkedin.com/in/jane/",
		TimeoutSeconds: 10,
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "https://www.linkedin.com/in/jane/", merged.URL)
	assert.Equal(t, 10, merged.TimeoutSeconds)
	assert.Equal(t, "https://api.lumina-app.com/v1", merged.APIURL)
	assert.Equal(t, "linkedin.com", merged.HostDomain)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Equal(t, 10, merged.WatchAttempts)
	assert.Equal(t, 20, merged.RequestsPerMinute)
	assert.False(t, merged.UseBrowser)
}

func TestMergeWithDefaults_KeepsDisabledThrottle(t *testing.T) {
	merged := (&Config{RequestsPerMinute: -1}).MergeWithDefaults(Defaults())
	assert.Equal(t, -1, merged.RequestsPerMinute)
	assert.NoError(t, merged.Validate())
}

func TestMergeWithDefaults_Layering(t *testing.T) {
	flags := &Config{Verbose: true}
	file := Config{APIURL: "https://file.example.com", UseBrowser: true}
	env := Config{APIURL: "https://env.example.com", SessionCookie: "env-cookie"}

	fileOverEnv := file.MergeWithDefaults(env)
	merged := flags.MergeWithDefaults(fileOverEnv)
	merged = merged.MergeWithDefaults(Defaults())

	assert.Equal(t, "https://file.example.com", merged.APIURL)
	assert.Equal(t, "env-cookie", merged.SessionCookie)
	assert.True(t, merged.UseBrowser)
	assert.True(t, merged.Verbose)
	assert.Equal(t, 30, merged.TimeoutSeconds)
}

func TestEnvConfig(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com/v1")
	t.Setenv(EnvSessionCookie, "li-cookie")

	cfg := EnvConfig()
	assert.Equal(t, "https://env.example.com/v1", cfg.APIURL)
	assert.Equal(t, "li-cookie", cfg.SessionCookie)
}

func TestDurations(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "30s", cfg.Timeout().String())
	assert.Equal(t, "2s", cfg.Interval().String())
}

func TestLoadSelectors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		sel, err := LoadSelectors("")
		require.NoError(t, err)
		assert.Equal(t, extract.DefaultSelectors(), sel)
	})

	t.Run("partial override", func(t *testing.T) {
		path := writeFile(t, "selectors.json", `{
			"list_item": "li.profile-row",
			"keywords": {"education": "Ausbildung"}
		}`)

		sel, err := LoadSelectors(path)
		require.NoError(t, err)

		defaults := extract.DefaultSelectors()
		assert.Equal(t, "li.profile-row", sel.ListItem)
		assert.Equal(t, "Ausbildung", sel.Keywords.Education)
		assert.Equal(t, defaults.Keywords.Experience, sel.Keywords.Experience)
		assert.Equal(t, defaults.Name, sel.Name)
		assert.Equal(t, defaults.VisualText, sel.VisualText)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, "selectors.json", `{`)
		sel, err := LoadSelectors(path)
		require.Error(t, err)
		assert.Equal(t, extract.DefaultSelectors(), sel)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSelectors("/nonexistent/selectors.json")
		assert.Error(t, err)
	})
}
