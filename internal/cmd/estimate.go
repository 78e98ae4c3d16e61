// Copyright (c) 2026 dotandev
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dotandev/tronfee/internal/chainparams"
	"github.com/dotandev/tronfee/internal/config"
	"github.com/dotandev/tronfee/internal/db"
	"github.com/dotandev/tronfee/internal/errors"
	"github.com/dotandev/tronfee/internal/fee"
	"github.com/dotandev/tronfee/internal/logger"
	noderpc "github.com/dotandev/tronfee/internal/rpc"
	"github.com/dotandev/tronfee/internal/tron"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	estimateTxPath    string
	estimateNetwork   string
	estimateNodeURL   string
	estimateEnergy    int64
	estimateBandwidth int64
	estimateFeeLimit  int64
	estimateNoHistory bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the resource and fee cost of a candidate transaction",
	Long: `Estimate what a transaction will cost given the account's currently
available energy and bandwidth. The transaction JSON (node format, signed or
unsigned) is read from --tx or stdin.

The breakdown lists resource units consumed from the account's allotments,
followed by the native-coin total covering overage and any account activation
surcharge.

Examples:
  tronfee estimate --tx tx.json --energy 50000 --bandwidth 600
  cat tx.json | tronfee estimate --network nile --fee-limit 100000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readTransactionInput(estimateTxPath)
		if err != nil {
			return err
		}

		tx, err := tron.ParseTransaction(raw)
		if err != nil {
			return err
		}

		client, err := resolveClient(estimateNetwork, estimateNodeURL)
		if err != nil {
			return err
		}

		composer := fee.NewComposer(client.Scope(), client, client, client, client, chainparams.NewCache())

		breakdown, err := composer.ComputeFee(cmd.Context(), fee.Request{
			Transaction:        tx,
			AvailableEnergy:    estimateEnergy,
			AvailableBandwidth: estimateBandwidth,
			FeeLimit:           estimateFeeLimit,
		})
		if err != nil {
			return err
		}

		renderBreakdown(breakdown, client.Scope())

		if !estimateNoHistory {
			saveEstimateHistory(tx, breakdown, client.Scope())
		}

		return nil
	},
}

// readTransactionInput loads the transaction JSON from a file or stdin.
func readTransactionInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read transaction from stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction file: %w", err)
	}
	return raw, nil
}

// resolveClient builds a node client for a built-in network, a custom URL, or
// a saved custom network.
func resolveClient(network, nodeURL string) (*noderpc.Client, error) {
	if nodeURL != "" {
		return noderpc.NewClientWithURL(nodeURL, noderpc.Network(network), ""), nil
	}

	switch noderpc.Network(network) {
	case noderpc.Mainnet, noderpc.Shasta, noderpc.Nile:
		return noderpc.NewClient(noderpc.Network(network), ""), nil
	}

	// Fall back to saved custom networks
	custom, err := config.GetCustomNetwork(network)
	if err != nil {
		return nil, errors.WrapInvalidNetwork(network)
	}
	return noderpc.NewCustomClient(*custom)
}

// renderBreakdown prints the fee breakdown the way a confirmation dialog
// would present it.
func renderBreakdown(b *fee.Breakdown, scope string) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Printf("Fee breakdown (%s)\n", scope)
	for _, e := range b.Entries {
		switch e.Kind {
		case fee.KindResource:
			green.Printf("  %-10s %s units (consumed from account allotment)\n", e.Unit, e.Amount)
		case fee.KindNative:
			yellow.Printf("  %-10s %s sun (%s %s)\n", e.Unit, e.Amount, fee.FormatTRX(e.Amount), e.AssetID)
		}
	}
	if len(b.Entries) == 0 {
		green.Println("  fully covered, nothing to charge")
	}
}

// saveEstimateHistory records the estimate; history is convenience only, so
// failures just log.
func saveEstimateHistory(tx *tron.Transaction, b *fee.Breakdown, scope string) {
	store, err := db.InitDB()
	if err != nil {
		logger.Logger.Warn("Could not open estimate history", "error", err)
		return
	}
	defer store.Close()

	lines := make([]string, 0, len(b.Entries))
	for _, e := range b.Entries {
		lines = append(lines, fmt.Sprintf("%s %s=%s", e.Kind, e.Unit, e.Amount))
	}

	err = store.SaveEstimate(&db.Estimate{
		TxID:           tx.TxID,
		Network:        scope,
		BandwidthBytes: tx.EstimateBytes(),
		EnergyUnits:    b.Resource(fee.UnitEnergy).Int64(),
		NativeTotalSun: b.NativeTotal().String(),
		Breakdown:      lines,
	})
	if err != nil {
		logger.Logger.Warn("Could not save estimate history", "error", err)
	}
}

func init() {
	estimateCmd.Flags().StringVar(&estimateTxPath, "tx", "", "Path to transaction JSON (node format); '-' or empty reads stdin")
	estimateCmd.Flags().StringVar(&estimateNetwork, "network", "mainnet", "Network: mainnet, shasta, nile, or a saved custom network")
	estimateCmd.Flags().StringVar(&estimateNodeURL, "node-url", "", "Custom full-node URL (overrides the network default)")
	estimateCmd.Flags().Int64Var(&estimateEnergy, "energy", 0, "Account's currently available energy")
	estimateCmd.Flags().Int64Var(&estimateBandwidth, "bandwidth", 0, "Account's currently available bandwidth")
	estimateCmd.Flags().Int64Var(&estimateFeeLimit, "fee-limit", 0, "Max native coin (sun) the sender is willing to spend on energy")
	estimateCmd.Flags().BoolVar(&estimateNoHistory, "no-history", false, "Do not record this estimate in the local history")

	rootCmd.AddCommand(estimateCmd)
}
