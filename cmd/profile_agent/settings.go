package main

import (
	"fmt"
	"log"

	"github.com/jonathan/profile-agent/internal/config"
	"github.com/jonathan/profile-agent/internal/submit"
)

// resolveConfig layers flag values over the config file, the environment and the
// built-in defaults, in that order of precedence.
func resolveConfig(flags config.Config, path string) (config.Config, error) {
	defaults := config.Defaults()
	env := config.EnvConfig()
	layered := env.MergeWithDefaults(defaults)

	if path != "" {
		fileCfg, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		layered = fileCfg.MergeWithDefaults(layered)
	}

	cfg := flags.MergeWithDefaults(layered)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.Verbose {
		log.Printf("[VERBOSE] API URL: %s", cfg.APIURL)
		log.Printf("[VERBOSE] Host domain: %s", cfg.HostDomain)
		log.Printf("[VERBOSE] Timeout: %s", cfg.Timeout())
	}
	return cfg, nil
}

// rootFlags returns the values of the persistent flags as a config layer.
func rootFlags() config.Config {
	return config.Config{
		APIURL:         apiURL,
		APICookie:      apiCookie,
		Verbose:        verbose,
		TimeoutSeconds: timeoutSec,
	}
}

func newClient(cfg config.Config) (*submit.Client, error) {
	return submit.NewClient(submit.ClientConfig{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout(),
		Cookie:  cfg.APICookie,
		Verbose: cfg.Verbose,
	})
}
