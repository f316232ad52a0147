package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/profile-agent/internal/config"
	"github.com/jonathan/profile-agent/internal/submit"
	"github.com/jonathan/profile-agent/internal/types"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Save candidate profiles to the candidate service",
	Long:  "Save candidate profiles to the candidate service, either from extract output (--in) or by extracting pages first (--html/--url).",
	RunE:  runSubmit,
}

var (
	submitInputFile string
	submitHTMLFiles []string
	submitURLs      []string
)

func init() {
	submitCmd.Flags().StringVarP(&submitInputFile, "in", "i", "", "Path to profile JSON written by extract")
	submitCmd.Flags().StringSliceVar(&submitHTMLFiles, "html", nil, "Extract and save a saved profile page (repeatable)")
	submitCmd.Flags().StringSliceVar(&submitURLs, "url", nil, "Extract and save a profile URL (repeatable)")
	submitCmd.Flags().StringVar(&extractPageURL, "page-url", "", "Address to record for a single --html page")
	submitCmd.Flags().StringVar(&extractSessionCookie, "session-cookie", "", "Profile site session cookie (overrides PROFILE_AGENT_SESSION_COOKIE)")
	submitCmd.Flags().BoolVar(&extractUseBrowser, "browser", false, "Render pages in headless Chrome")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	useFile := submitInputFile != ""
	usePages := len(submitHTMLFiles) > 0 || len(submitURLs) > 0
	if useFile && usePages {
		return fmt.Errorf("cannot use --in with --html/--url flags")
	}
	if !useFile && !usePages {
		return fmt.Errorf("must provide either --in or --html/--url flags")
	}

	cfg, err := resolveConfig(extractFlags(), configFile)
	if err != nil {
		return err
	}

	if !useFile {
		return submitPages(cmd.Context(), cfg, submitHTMLFiles, submitURLs, os.Stdout)
	}

	profiles, err := readProfiles(submitInputFile)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	return saveProfiles(cmd.Context(), client, profiles, os.Stdout)
}

// submitPages extracts the given pages and saves every profile that came out,
// even when some pages failed. Extraction and save failures are both reported.
func submitPages(ctx context.Context, cfg config.Config, htmlFiles, urls []string, out io.Writer) error {
	profiles, extractErr := extractProfiles(ctx, cfg, htmlFiles, urls, false)
	if len(profiles) == 0 {
		return extractErr
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	return errors.Join(extractErr, saveProfiles(ctx, client, profiles, out))
}

// saveProfiles dispatches one save per profile and prints each response as a JSON line.
func saveProfiles(ctx context.Context, client *submit.Client, profiles []types.CandidateProfile, out io.Writer) error {
	failed := 0
	for i := range profiles {
		resp, err := client.Dispatch(ctx, submit.SaveCandidate{Profile: &profiles[i]})
		if err != nil {
			return err
		}
		if !resp.Success {
			failed++
		}
		if err := writeResponse(out, resp); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles were not saved", failed, len(profiles))
	}
	return nil
}

func writeResponse(out io.Writer, resp submit.Response) error {
	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", jsonBytes)
	return err
}
