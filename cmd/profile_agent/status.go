package main

import (
	"fmt"
	"os"

	"github.com/jonathan/profile-agent/internal/observability"
	"github.com/jonathan/profile-agent/internal/submit"
	"github.com/jonathan/profile-agent/internal/types"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether a profile is already saved",
	Long:  "Ask the candidate service whether a profile URL has already been saved, and with what status.",
	RunE:  runStatus,
}

var statusSourceURL string

func init() {
	statusCmd.Flags().StringVar(&statusSourceURL, "url", "", "Profile URL to look up (required)")
	_ = statusCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(rootFlags(), configFile)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	resp, err := client.Dispatch(cmd.Context(), submit.CheckCandidateStatus{SourceURL: statusSourceURL})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("status check failed: %s", resp.Message)
	}

	if cfg.Verbose {
		if status, ok := resp.Data.(*types.CandidateStatus); ok {
			observability.NewPrinter(os.Stderr).PrintCandidateStatus(statusSourceURL, status)
		}
	}
	return writeResponse(os.Stdout, resp)
}
