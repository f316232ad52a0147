package main

import (
	"os"

	"github.com/jonathan/profile-agent/internal/submit"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Print the client version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Ping is answered locally, so any base URL will do.
		client, err := submit.NewClient(submit.ClientConfig{BaseURL: "http://localhost"})
		if err != nil {
			return err
		}
		resp, err := client.Dispatch(cmd.Context(), submit.Ping{})
		if err != nil {
			return err
		}
		return writeResponse(os.Stdout, resp)
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
