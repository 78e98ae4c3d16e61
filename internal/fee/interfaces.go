// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"

	"github.com/dotandev/tronfee/internal/tron"
)

// Collaborator contracts the engine consumes. *rpc.Client satisfies all four;
// tests use the Mock implementations in mock.go.

// SimulationClient executes a constant contract call against the ledger.
type SimulationClient interface {
	SimulateCall(ctx context.Context, req tron.SimulateRequest) (*tron.SimulateResult, error)
}

// ContractInfoClient fetches a deployed contract's energy-sharing
// configuration. A nil result without error means the contract is unknown.
type ContractInfoClient interface {
	GetContractInfo(ctx context.Context, contractAddr string) (*tron.ContractSubsidy, error)
}

// AccountProbe reports whether an address has been activated on-chain.
type AccountProbe interface {
	AccountExists(ctx context.Context, address string) (bool, error)
}

// ParameterClient fetches the ledger-wide parameter list.
type ParameterClient interface {
	GetChainParameters(ctx context.Context) ([]tron.ChainParameter, error)
}
