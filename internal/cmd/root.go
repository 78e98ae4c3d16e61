// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/dotandev/tronfee/internal/updater"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tronfee",
	Short: "TRON transaction resource and fee estimator",
	Long: `Tronfee estimates what a candidate TRON transaction will cost before it is
signed or broadcast: bandwidth bytes, smart-contract energy, native-coin
overage and the one-time account activation surcharge.

Key features:
  - Exact billable-size accounting for signed and unsigned transactions
  - Per-operation energy simulation with deployer energy-sharing applied
  - Maintenance-window-aware chain parameter caching
  - Activation surcharge detection for brand-new recipient addresses

Examples:
  tronfee estimate --tx tx.json --energy 50000 --bandwidth 600
  tronfee estimate --tx tx.json --network nile
  tronfee params --network mainnet
  tronfee daemon --port 8080

Get started with 'tronfee estimate --help'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		checkForUpdatesAsync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// checkForUpdatesAsync runs the update check in a goroutine to not block CLI startup
func checkForUpdatesAsync() {
	go func() {
		checker := updater.NewChecker(Version)
		checker.CheckForUpdates()
	}()
}
