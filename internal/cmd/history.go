// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/dotandev/tronfee/internal/db"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent fee estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.InitDB()
		if err != nil {
			return err
		}
		defer store.Close()

		estimates, err := store.ListEstimates(historyLimit)
		if err != nil {
			return err
		}

		if len(estimates) == 0 {
			fmt.Println("No estimates recorded yet")
			return nil
		}

		fmt.Printf("%-20s %-10s %-10s %-10s %s\n", "TIME", "NETWORK", "BYTES", "ENERGY", "NATIVE (SUN)")
		fmt.Println(strings.Repeat("-", 70))
		for _, e := range estimates {
			fmt.Printf("%-20s %-10s %-10d %-10d %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.Network, e.BandwidthBytes, e.EnergyUnits, e.NativeTotalSun)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of estimates to show")
	rootCmd.AddCommand(historyCmd)
}
