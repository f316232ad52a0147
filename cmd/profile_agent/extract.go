package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/profile-agent/internal/config"
	"github.com/jonathan/profile-agent/internal/observability"
	"github.com/jonathan/profile-agent/internal/types"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract candidate profiles from profile pages",
	Long:  "Extract structured candidate profile JSON from saved profile pages (--html) or live profile URLs (--url), optionally rendered in headless Chrome.",
	RunE:  runExtract,
}

var (
	extractHTMLFiles     []string
	extractURLs          []string
	extractPageURL       string
	extractOutputFile    string
	extractSelectorsFile string
	extractSessionCookie string
	extractHostDomain    string
	extractUseBrowser    bool
	extractWatch         bool
	extractConcurrency   int
)

func init() {
	extractCmd.Flags().StringSliceVar(&extractHTMLFiles, "html", nil, "Path to a saved, rendered profile page (repeatable)")
	extractCmd.Flags().StringSliceVar(&extractURLs, "url", nil, "Profile URL to fetch (repeatable)")
	extractCmd.Flags().StringVar(&extractPageURL, "page-url", "", "Address to record for a single --html page")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVar(&extractSelectorsFile, "selectors", "", "JSON file overriding extraction selectors")
	extractCmd.Flags().StringVar(&extractSessionCookie, "session-cookie", "", "Profile site session cookie (overrides PROFILE_AGENT_SESSION_COOKIE)")
	extractCmd.Flags().StringVar(&extractHostDomain, "host-domain", "", "Domain on which a page without a name is an error")
	extractCmd.Flags().BoolVar(&extractUseBrowser, "browser", false, "Render pages in headless Chrome")
	extractCmd.Flags().BoolVar(&extractWatch, "watch", false, "Re-extract until the rendered profile stops changing (requires --browser)")
	extractCmd.Flags().IntVar(&extractConcurrency, "concurrency", 0, "Maximum pages processed at once")

	rootCmd.AddCommand(extractCmd)
}

// extractFlags returns the extract-specific flag values as a config layer.
func extractFlags() config.Config {
	cfg := rootFlags()
	cfg.PageURL = extractPageURL
	cfg.SelectorsFile = extractSelectorsFile
	cfg.SessionCookie = extractSessionCookie
	cfg.HostDomain = extractHostDomain
	cfg.UseBrowser = extractUseBrowser
	cfg.Concurrency = extractConcurrency
	return cfg
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(extractFlags(), configFile)
	if err != nil {
		return err
	}

	profiles, err := extractProfiles(cmd.Context(), cfg, extractHTMLFiles, extractURLs, extractWatch)
	if len(profiles) > 0 {
		if writeErr := writeProfiles(extractOutputFile, os.Stdout, profiles); writeErr != nil {
			return writeErr
		}
		if extractOutputFile != "" {
			_, _ = fmt.Fprintf(os.Stdout, "Successfully extracted %d profile(s)\n", len(profiles))
			_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", extractOutputFile)
		}
	}
	return err
}

// extractProfiles runs the whole pipeline over the given inputs. It returns every
// profile that succeeded along with an error describing any that did not.
func extractProfiles(ctx context.Context, cfg config.Config, htmlFiles, urls []string, watchPage bool) ([]types.CandidateProfile, error) {
	inputs, err := collectInputs(htmlFiles, urls, cfg)
	if err != nil {
		return nil, err
	}

	p, err := newPipeline(cfg, watchPage)
	if err != nil {
		return nil, err
	}

	profiles, failures := extractAll(ctx, inputs, cfg.Concurrency, p.run)

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		for i := range profiles {
			printer.PrintCandidateProfile(&profiles[i])
		}
		if len(inputs) > 1 {
			printer.PrintFailures(failures)
		}
	}

	if len(failures) == 0 {
		return profiles, nil
	}
	if len(inputs) == 1 {
		return profiles, failures[inputs[0].String()]
	}
	return profiles, fmt.Errorf("%d of %d inputs failed", len(failures), len(inputs))
}

// writeProfiles writes a single profile as an object and several as an array,
// to path when it is set and to stdout otherwise.
func writeProfiles(path string, stdout io.Writer, profiles []types.CandidateProfile) error {
	var v any = profiles
	if len(profiles) == 1 {
		v = profiles[0]
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if path == "" {
		_, err = stdout.Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readProfiles loads one profile object or an array of them from a JSON file.
func readProfiles(path string) ([]types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var many []types.CandidateProfile
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one types.CandidateProfile
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return []types.CandidateProfile{one}, nil
}
