package main

import (
	"os"

	"github.com/jonathan/profile-agent/internal/submit"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Check the candidate service session",
	Long:  "Check whether the configured cookie is accepted by the candidate service. Exits non-zero when it is not.",
	RunE:  runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(rootFlags(), configFile)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	resp, err := client.Dispatch(cmd.Context(), submit.CheckAuth{})
	if err != nil {
		return err
	}
	if err := writeResponse(os.Stdout, resp); err != nil {
		return err
	}
	if !resp.Success {
		return submit.ErrNotAuthenticated
	}
	return nil
}
