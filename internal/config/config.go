// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by EnvConfig.
const (
	EnvAPIURL        = "PROFILE_AGENT_API_URL"
	EnvAPICookie     = "PROFILE_AGENT_API_COOKIE"
	EnvSessionCookie = "PROFILE_AGENT_SESSION_COOKIE"
	EnvSelectorsFile = "PROFILE_AGENT_SELECTORS"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Page source
	HTML    string `json:"html,omitempty" yaml:"html,omitempty"`         // Path to a saved, rendered profile page
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`           // Profile URL to fetch or render
	PageURL string `json:"page_url,omitempty" yaml:"page_url,omitempty"` // Address to attribute to a saved page

	// Candidate service
	APIURL    string `json:"api_url,omitempty" yaml:"api_url,omitempty"`       // Base URL of the candidate service
	APICookie string `json:"api_cookie,omitempty" yaml:"api_cookie,omitempty"` // Cookie header sent to the candidate service

	// Profile site
	SessionCookie string `json:"session_cookie,omitempty" yaml:"session_cookie,omitempty"` // Profile site session cookie for fetching
	HostDomain    string `json:"host_domain,omitempty" yaml:"host_domain,omitempty"`       // Domain on which a missing name is fatal
	SelectorsFile string `json:"selectors_file,omitempty" yaml:"selectors_file,omitempty"` // JSON file overriding extraction selectors

	// Behavior
	UseBrowser     bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`         // Render with headless Chrome
	Verbose        bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`                 // Print detailed debug information
	TimeoutSeconds int  `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"` // Per-request timeout
	Concurrency    int  `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`         // Parallel inputs for batch extraction
	WatchInterval  int  `json:"watch_interval_seconds,omitempty" yaml:"watch_interval_seconds,omitempty"`
	WatchAttempts  int  `json:"watch_attempts,omitempty" yaml:"watch_attempts,omitempty"`

	// RequestsPerMinute caps live page requests per site. Zero means the default
	// and a negative value turns throttling off.
	RequestsPerMinute int `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:         "https://api.lumina-app.com/v1",
		HostDomain:     "linkedin.com",
		TimeoutSeconds: 30,
		Concurrency:    4,
		WatchInterval:  2,
		WatchAttempts:  10,

		RequestsPerMinute: 20,
	}
}

// EnvConfig returns the values set through environment variables.
func EnvConfig() Config {
	return Config{
		APIURL:        os.Getenv(EnvAPIURL),
		APICookie:     os.Getenv(EnvAPICookie),
		SessionCookie: os.Getenv(EnvSessionCookie),
		SelectorsFile: os.Getenv(EnvSelectorsFile),
	}
}

// LoadConfig loads configuration from a JSON file, or YAML for .yaml/.yml paths.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.HTML != "" && c.URL != "" {
		return fmt.Errorf("config error: 'html' and 'url' are mutually exclusive")
	}

	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.WatchInterval < 0 || c.WatchAttempts < 0 {
		return fmt.Errorf("config error: watch settings must be non-negative")
	}

	if c.APIURL != "" {
		parsed, err := url.Parse(c.APIURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config error: invalid 'api_url': %s", c.APIURL)
		}
	}

	if c.HTML != "" {
		if _, err := os.Stat(c.HTML); os.IsNotExist(err) {
			return fmt.Errorf("config error: html file not found: %s", c.HTML)
		}
	}
	if c.SelectorsFile != "" {
		if _, err := os.Stat(c.SelectorsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: selectors file not found: %s", c.SelectorsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file, environment and built-in values under CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.HTML == "" {
		result.HTML = defaults.HTML
	}
	if result.URL == "" {
		result.URL = defaults.URL
	}
	if result.PageURL == "" {
		result.PageURL = defaults.PageURL
	}
	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.APICookie == "" {
		result.APICookie = defaults.APICookie
	}
	if result.SessionCookie == "" {
		result.SessionCookie = defaults.SessionCookie
	}
	if result.HostDomain == "" {
		result.HostDomain = defaults.HostDomain
	}
	if result.SelectorsFile == "" {
		result.SelectorsFile = defaults.SelectorsFile
	}

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.WatchInterval == 0 {
		result.WatchInterval = defaults.WatchInterval
	}
	if result.WatchAttempts == 0 {
		result.WatchAttempts = defaults.WatchAttempts
	}
	if result.RequestsPerMinute == 0 {
		result.RequestsPerMinute = defaults.RequestsPerMinute
	}

	// Bool fields: cannot distinguish unset from false, so only true propagates
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Interval returns the watch interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.WatchInterval) * time.Second
}
