// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"sort"

	"github.com/dotandev/tronfee/internal/config"
	noderpc "github.com/dotandev/tronfee/internal/rpc"
	"github.com/spf13/cobra"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "Manage custom network configurations",
}

var networksAddCmd = &cobra.Command{
	Use:   "add <name> <full-node-url>",
	Short: "Save a custom network",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		if err := config.AddCustomNetwork(name, noderpc.NetworkConfig{FullNodeURL: url}); err != nil {
			return err
		}
		fmt.Printf("Saved custom network '%s' -> %s\n", name, url)
		return nil
	},
}

var networksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved custom networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := config.ListCustomNetworks()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No custom networks saved")
			return nil
		}
		sort.Strings(names)
		for _, name := range names {
			cfg, err := config.GetCustomNetwork(name)
			if err != nil {
				continue
			}
			fmt.Printf("  %-20s %s\n", name, cfg.FullNodeURL)
		}
		return nil
	},
}

var networksRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a saved custom network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.RemoveCustomNetwork(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed custom network '%s'\n", args[0])
		return nil
	},
}

func init() {
	networksCmd.AddCommand(networksAddCmd)
	networksCmd.AddCommand(networksListCmd)
	networksCmd.AddCommand(networksRemoveCmd)
	rootCmd.AddCommand(networksCmd)
}
