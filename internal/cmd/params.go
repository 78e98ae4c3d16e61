// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/dotandev/tronfee/internal/chainparams"
	"github.com/spf13/cobra"
)

var (
	paramsNetwork string
	paramsNodeURL string
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show the chain parameters used for fee pricing",
	Long: `Fetch and display the ledger-wide parameters the fee engine prices with,
along with the maintenance window the values stay valid for.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient(paramsNetwork, paramsNodeURL)
		if err != nil {
			return err
		}

		cache := chainparams.NewCache()
		params, err := cache.Get(cmd.Context(), client.Scope(), client.GetChainParameters)
		if err != nil {
			return err
		}

		fmt.Printf("Chain parameters for %s (%d entries)\n", client.Scope(), len(params))
		for _, p := range params {
			fmt.Printf("  %-50s %d\n", p.Key, p.Value)
		}

		if expiry, ok := cache.Expiry(client.Scope()); ok {
			fmt.Printf("\nValid until next maintenance boundary: %s (in %s)\n",
				expiry.Format(time.RFC3339), time.Until(expiry).Round(time.Second))
		}

		return nil
	},
}

func init() {
	paramsCmd.Flags().StringVar(&paramsNetwork, "network", "mainnet", "Network: mainnet, shasta, nile, or a saved custom network")
	paramsCmd.Flags().StringVar(&paramsNodeURL, "node-url", "", "Custom full-node URL (overrides the network default)")

	rootCmd.AddCommand(paramsCmd)
}
