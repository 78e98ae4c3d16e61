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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotandev/tronfee/internal/daemon"
	"github.com/dotandev/tronfee/internal/errors"
	noderpc "github.com/dotandev/tronfee/internal/rpc"
	"github.com/dotandev/tronfee/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	daemonPort      string
	daemonNetwork   string
	daemonNodeURL   string
	daemonAuthToken string
	daemonTracing   bool
	daemonOTLPURL   string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start a JSON-RPC server exposing fee estimation",
	Long: `Start a JSON-RPC 2.0 server that exposes the fee engine for wallet
frontends and other tools.

Endpoints:
  - fee.Estimate: estimate a candidate transaction's resource and fee cost

Example:
  tronfee daemon --port 8080 --network nile
  tronfee daemon --port 8080 --auth-token secret123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Initialize OpenTelemetry if enabled
		if daemonTracing {
			cleanup, err := telemetry.Init(ctx, telemetry.Config{
				Enabled:     true,
				ExporterURL: daemonOTLPURL,
				ServiceName: "tronfee-daemon",
				Version:     Version,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize telemetry: %w", err)
			}
			defer cleanup()
		}

		// Validate network
		switch noderpc.Network(daemonNetwork) {
		case noderpc.Mainnet, noderpc.Shasta, noderpc.Nile:
		default:
			if daemonNodeURL == "" {
				return errors.WrapInvalidNetwork(daemonNetwork)
			}
		}

		server, err := daemon.NewServer(daemon.Config{
			Port:      daemonPort,
			Network:   daemonNetwork,
			NodeURL:   daemonNodeURL,
			AuthToken: daemonAuthToken,
		})
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		// Setup graceful shutdown
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		return server.Start(ctx, daemonPort)
	},
}

func init() {
	daemonCmd.Flags().StringVar(&daemonPort, "port", "8080", "Port to listen on")
	daemonCmd.Flags().StringVar(&daemonNetwork, "network", "mainnet", "Network: mainnet, shasta, nile")
	daemonCmd.Flags().StringVar(&daemonNodeURL, "node-url", "", "Custom full-node URL")
	daemonCmd.Flags().StringVar(&daemonAuthToken, "auth-token", "", "Require this bearer token on every request")
	daemonCmd.Flags().BoolVar(&daemonTracing, "tracing", false, "Enable OpenTelemetry tracing")
	daemonCmd.Flags().StringVar(&daemonOTLPURL, "otlp-url", "localhost:4318", "OTLP HTTP exporter endpoint")

	rootCmd.AddCommand(daemonCmd)
}
