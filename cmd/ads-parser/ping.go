// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the ADS token works",
	Long: `Ping sends a one-row query to ADS and reports how many documents matched.
It fails with an authentication error when the token is rejected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cmd, cfg.ADS)
		if err != nil {
			return err
		}
		n, err := client.Ping(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ADS API reachable at %s (%d documents matched test query)\n", cfg.ADS.BaseURL, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
