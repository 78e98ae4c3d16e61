// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package tron

// SimulateRequest describes one constant (read-only) contract invocation to
// be executed against the node, mirroring the triggerconstantcontract input.
type SimulateRequest struct {
	OwnerAddress    string `json:"owner_address"`
	ContractAddress string `json:"contract_address"`
	Data            string `json:"data,omitempty"`
	CallValue       int64  `json:"call_value,omitempty"`
	TokenID         int64  `json:"token_id,omitempty"`
	CallTokenValue  int64  `json:"call_token_value,omitempty"`
}

// SimulateResult is the engine-facing view of a simulation outcome.
type SimulateResult struct {
	Success    bool
	EnergyUsed int64
	Message    string
}

// ContractSubsidy is a deployed contract's energy-sharing configuration.
//
// CallerResourcePercent is the share of energy the caller pays (0-100).
// DeployerEnergyLimit caps the energy the deployer absorbs per transaction.
type ContractSubsidy struct {
	CallerResourcePercent int64
	DeployerEnergyLimit   int64
}

// DefaultContractSubsidy is the configuration assumed when a contract's info
// is unavailable: the caller pays everything.
func DefaultContractSubsidy() ContractSubsidy {
	return ContractSubsidy{CallerResourcePercent: 100, DeployerEnergyLimit: 0}
}
