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

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dotandev/tronfee/internal/errors"
	"github.com/dotandev/tronfee/internal/logger"
	"github.com/dotandev/tronfee/internal/telemetry"
	"github.com/dotandev/tronfee/internal/tron"
	"go.opentelemetry.io/otel/attribute"
)

// Network types for TRON
type Network string

const (
	Mainnet Network = "mainnet"
	Shasta  Network = "shasta"
	Nile    Network = "nile"
)

// Full-node URLs for each network
const (
	MainnetNodeURL = "https://api.trongrid.io"
	ShastaNodeURL  = "https://api.shasta.trongrid.io"
	NileNodeURL    = "https://nile.trongrid.io"
)

// defaultRequestTimeout bounds every node call that arrives without a
// caller-set deadline.
const defaultRequestTimeout = 30 * time.Second

// authTransport is a custom HTTP RoundTripper that adds the provider API key
type authTransport struct {
	apiKey    string
	transport http.RoundTripper
}

// RoundTrip implements http.RoundTripper interface
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.apiKey != "" {
		req.Header.Set("TRON-PRO-API-KEY", t.apiKey)
	}
	return t.transport.RoundTrip(req)
}

// NetworkConfig represents a TRON network configuration
type NetworkConfig struct {
	Name        string `json:"name"`
	FullNodeURL string `json:"full_node_url"`
}

// Predefined network configurations
var (
	MainnetConfig = NetworkConfig{
		Name:        "mainnet",
		FullNodeURL: MainnetNodeURL,
	}

	ShastaConfig = NetworkConfig{
		Name:        "shasta",
		FullNodeURL: ShastaNodeURL,
	}

	NileConfig = NetworkConfig{
		Name:        "nile",
		FullNodeURL: NileNodeURL,
	}
)

// Client handles interactions with a TRON full node's JSON HTTP API.
// It implements the collaborator contracts the fee engine consumes:
// simulation, contract info, account probing and chain parameters.
type Client struct {
	Network Network
	NodeURL string
	Config  NetworkConfig
	http    *http.Client
	apiKey  string // stored for reference, not logged
}

// NewClient creates a new client for the specified network.
// If network is empty, defaults to Mainnet.
// An API key can be provided via the apiKey parameter or the
// TRONFEE_API_KEY environment variable.
func NewClient(net Network, apiKey string) *Client {
	if net == "" {
		net = Mainnet
	}

	// Check environment variable if key not provided
	if apiKey == "" {
		apiKey = os.Getenv("TRONFEE_API_KEY")
	}

	var config NetworkConfig
	switch net {
	case Shasta:
		config = ShastaConfig
	case Nile:
		config = NileConfig
	case Mainnet:
		fallthrough
	default:
		config = MainnetConfig
	}

	if apiKey != "" {
		logger.Logger.Debug("Node client initialized with API key")
	} else {
		logger.Logger.Debug("Node client initialized without API key")
	}

	return &Client{
		Network: net,
		NodeURL: config.FullNodeURL,
		Config:  config,
		http:    createHTTPClient(apiKey),
		apiKey:  apiKey,
	}
}

// NewClientWithURL creates a new client pointed at a custom full-node URL.
func NewClientWithURL(url string, net Network, apiKey string) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("TRONFEE_API_KEY")
	}

	c := NewClient(net, apiKey)
	c.NodeURL = url
	c.Config.FullNodeURL = url
	return c
}

// NewCustomClient creates a new client for a custom/private network
func NewCustomClient(config NetworkConfig) (*Client, error) {
	if config.FullNodeURL == "" {
		return nil, fmt.Errorf("full node URL is required for custom network")
	}
	if config.Name == "" {
		config.Name = "custom"
	}

	return &Client{
		Network: Network(config.Name),
		NodeURL: config.FullNodeURL,
		Config:  config,
		http:    createHTTPClient(""),
	}, nil
}

// createHTTPClient creates an HTTP client with retries and optional auth
func createHTTPClient(apiKey string) *http.Client {
	transport := http.RoundTripper(NewRetryTransport(DefaultRetryConfig(), nil))
	if apiKey != "" {
		transport = &authTransport{apiKey: apiKey, transport: transport}
	}
	return &http.Client{Transport: transport}
}

// Scope returns the cache/scope key for this client's network.
func (c *Client) Scope() string {
	if c.Config.Name != "" {
		return c.Config.Name
	}
	return "custom"
}

// post sends a JSON body to a /wallet endpoint and decodes the reply into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	// Set a timeout if context doesn't have one
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultRequestTimeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return errors.WrapMarshalFailed(err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.NodeURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapRPCConnectionFailed(err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Logger.Error("Node returned non-OK status", "path", path, "status", resp.StatusCode)
		return errors.WrapRPCConnectionFailed(fmt.Errorf("status code %d: %s", resp.StatusCode, respBytes))
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return errors.WrapUnmarshalFailed(err, string(respBytes))
	}

	return nil
}

// triggerConstantResponse is the wire shape of triggerconstantcontract.
type triggerConstantResponse struct {
	Result struct {
		Result  bool   `json:"result"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"result"`
	EnergyUsed     int64    `json:"energy_used"`
	ConstantResult []string `json:"constant_result,omitempty"`
}

// SimulateCall executes a constant contract invocation on the node and
// reports whether it succeeded plus the energy it consumed. No state is
// modified and nothing is broadcast.
func (c *Client) SimulateCall(ctx context.Context, req tron.SimulateRequest) (*tron.SimulateResult, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_simulate_call")
	span.SetAttributes(
		attribute.String("network", string(c.Network)),
		attribute.String("contract.address", req.ContractAddress),
		attribute.Int("call.data_size", len(req.Data)),
	)
	defer span.End()

	logger.Logger.Debug("Simulating contract call",
		"contract", req.ContractAddress,
		"caller", req.OwnerAddress,
		"call_value", req.CallValue,
	)

	var resp triggerConstantResponse
	if err := c.post(ctx, "/wallet/triggerconstantcontract", req, &resp); err != nil {
		span.RecordError(err)
		return nil, errors.WrapSimulationFailed(err)
	}

	span.SetAttributes(
		attribute.Bool("simulation.success", resp.Result.Result),
		attribute.Int64("simulation.energy_used", resp.EnergyUsed),
	)

	logger.Logger.Info("Simulation completed",
		"contract", req.ContractAddress,
		"success", resp.Result.Result,
		"energy_used", resp.EnergyUsed,
	)

	return &tron.SimulateResult{
		Success:    resp.Result.Result,
		EnergyUsed: resp.EnergyUsed,
		Message:    resp.Result.Message,
	}, nil
}

// getContractResponse is the wire shape of getcontract. The node answers an
// empty object for unknown addresses.
type getContractResponse struct {
	ContractAddress           string `json:"contract_address,omitempty"`
	OriginAddress             string `json:"origin_address,omitempty"`
	ConsumeUserResourcePercent int64 `json:"consume_user_resource_percent,omitempty"`
	OriginEnergyLimit         int64  `json:"origin_energy_limit,omitempty"`
}

// GetContractInfo fetches a deployed contract's energy-sharing configuration.
// Returns (nil, nil) when the contract is not found; callers treat that as
// "caller pays all".
func (c *Client) GetContractInfo(ctx context.Context, contractAddr string) (*tron.ContractSubsidy, error) {
	logger.Logger.Debug("Fetching contract info", "contract", contractAddr)

	var resp getContractResponse
	if err := c.post(ctx, "/wallet/getcontract", map[string]string{"value": contractAddr}, &resp); err != nil {
		return nil, err
	}

	if resp.ContractAddress == "" {
		logger.Logger.Debug("Contract not found", "contract", contractAddr)
		return nil, nil
	}

	return &tron.ContractSubsidy{
		CallerResourcePercent: resp.ConsumeUserResourcePercent,
		DeployerEnergyLimit:   resp.OriginEnergyLimit,
	}, nil
}

// AccountExists probes whether an address has been activated on-chain.
// The node answers an empty object for addresses it has never seen.
func (c *Client) AccountExists(ctx context.Context, address string) (bool, error) {
	logger.Logger.Debug("Probing account", "address", address)

	var resp map[string]json.RawMessage
	if err := c.post(ctx, "/wallet/getaccount", map[string]string{"address": address}, &resp); err != nil {
		return false, err
	}

	return len(resp) > 0, nil
}

// getChainParametersResponse is the wire shape of getchainparameters.
type getChainParametersResponse struct {
	ChainParameter []tron.ChainParameter `json:"chainParameter"`
}

// GetChainParameters fetches the ledger-wide parameter list.
func (c *Client) GetChainParameters(ctx context.Context) ([]tron.ChainParameter, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_get_chain_parameters")
	span.SetAttributes(attribute.String("network", string(c.Network)))
	defer span.End()

	logger.Logger.Debug("Fetching chain parameters", "network", c.Network)

	var resp getChainParametersResponse
	if err := c.post(ctx, "/wallet/getchainparameters", struct{}{}, &resp); err != nil {
		span.RecordError(err)
		return nil, errors.WrapParameterFetchFailed(err)
	}

	span.SetAttributes(attribute.Int("parameters.count", len(resp.ChainParameter)))

	logger.Logger.Info("Chain parameters fetched", "count", len(resp.ChainParameter), "network", c.Network)

	return resp.ChainParameter, nil
}
