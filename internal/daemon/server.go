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

package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dotandev/tronfee/internal/chainparams"
	"github.com/dotandev/tronfee/internal/fee"
	"github.com/dotandev/tronfee/internal/logger"
	noderpc "github.com/dotandev/tronfee/internal/rpc"
	"github.com/dotandev/tronfee/internal/telemetry"
	"github.com/dotandev/tronfee/internal/tron"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"go.opentelemetry.io/otel/attribute"
)

// Compile-time check that the node client satisfies the engine contracts.
var (
	_ fee.SimulationClient   = (*noderpc.Client)(nil)
	_ fee.ContractInfoClient = (*noderpc.Client)(nil)
	_ fee.AccountProbe       = (*noderpc.Client)(nil)
	_ fee.ParameterClient    = (*noderpc.Client)(nil)
)

// Server exposes the fee engine over JSON-RPC 2.0 so wallet frontends can
// validate a send before presenting their confirmation dialog.
type Server struct {
	client    *noderpc.Client
	composer  *fee.Composer
	authToken string
}

// Config holds daemon configuration
type Config struct {
	Port      string
	Network   string
	NodeURL   string
	AuthToken string
}

// EstimateRequest represents the fee.Estimate RPC request.
type EstimateRequest struct {
	Transaction        json.RawMessage `json:"transaction"`
	AvailableEnergy    int64           `json:"available_energy"`
	AvailableBandwidth int64           `json:"available_bandwidth"`
	FeeLimit           int64           `json:"fee_limit,omitempty"`
}

// EstimateResponse represents the fee.Estimate RPC response. The breakdown is
// surfaced verbatim; the daemon adds only the network tag and a rendered TRX
// amount for display.
type EstimateResponse struct {
	Network        string      `json:"network"`
	Entries        []fee.Entry `json:"entries"`
	NativeTotalTRX string      `json:"native_total_trx"`
}

// NewServer creates a new JSON-RPC server
func NewServer(config Config) (*Server, error) {
	var client *noderpc.Client
	if config.NodeURL != "" {
		client = noderpc.NewClientWithURL(config.NodeURL, noderpc.Network(config.Network), "")
	} else {
		client = noderpc.NewClient(noderpc.Network(config.Network), "")
	}

	composer := fee.NewComposer(client.Scope(), client, client, client, client, chainparams.NewCache())

	return &Server{
		client:    client,
		composer:  composer,
		authToken: config.AuthToken,
	}, nil
}

// authenticate validates the authorization token
func (s *Server) authenticate(r *http.Request) bool {
	if s.authToken == "" {
		return true // No auth required
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return false
	}

	// Support "Bearer <token>" format
	if strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		return token == s.authToken
	}

	return auth == s.authToken
}

// Estimate handles fee.Estimate RPC calls
func (s *Server) Estimate(r *http.Request, req *EstimateRequest, resp *EstimateResponse) error {
	if !s.authenticate(r) {
		return fmt.Errorf("unauthorized")
	}

	ctx := r.Context()
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_estimate_fee")
	span.SetAttributes(attribute.String("network", string(s.client.Network)))
	defer span.End()

	tx, err := tron.ParseTransaction(req.Transaction)
	if err != nil {
		span.RecordError(err)
		return err
	}

	logger.Logger.Info("Processing fee.Estimate RPC",
		"tx_id", tx.TxID,
		"contracts", len(tx.Contracts()),
	)

	breakdown, err := s.composer.ComputeFee(ctx, fee.Request{
		Transaction:        tx,
		AvailableEnergy:    req.AvailableEnergy,
		AvailableBandwidth: req.AvailableBandwidth,
		FeeLimit:           req.FeeLimit,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	*resp = EstimateResponse{
		Network:        string(s.client.Network),
		Entries:        breakdown.Entries,
		NativeTotalTRX: fee.FormatTRX(breakdown.NativeTotal()),
	}

	return nil
}

// Start starts the JSON-RPC server
func (s *Server) Start(ctx context.Context, port string) error {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")

	if err := server.RegisterService(s, "fee"); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", server)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	logger.Logger.Info("Starting JSON-RPC server", "port", port)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()
	logger.Logger.Info("Shutting down JSON-RPC server")
	return srv.Shutdown(context.Background())
}
