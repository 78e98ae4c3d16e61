// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"

	"github.com/dotandev/tronfee/internal/tron"
)

// Deterministic fakes for the collaborator contracts. Each delegates to an
// optional func field and falls back to a benign default, so tests only wire
// the behavior they care about.

type MockSimulator struct {
	SimulateFunc func(ctx context.Context, req tron.SimulateRequest) (*tron.SimulateResult, error)
}

func (m *MockSimulator) SimulateCall(ctx context.Context, req tron.SimulateRequest) (*tron.SimulateResult, error) {
	if m.SimulateFunc != nil {
		return m.SimulateFunc(ctx, req)
	}
	return &tron.SimulateResult{Success: true, EnergyUsed: DefaultEnergyEstimate}, nil
}

type MockContractInfo struct {
	GetFunc func(ctx context.Context, contractAddr string) (*tron.ContractSubsidy, error)
}

func (m *MockContractInfo) GetContractInfo(ctx context.Context, contractAddr string) (*tron.ContractSubsidy, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, contractAddr)
	}
	return nil, nil
}

type MockAccountProbe struct {
	ExistsFunc func(ctx context.Context, address string) (bool, error)
}

func (m *MockAccountProbe) AccountExists(ctx context.Context, address string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, address)
	}
	return true, nil
}

type MockParameters struct {
	GetFunc func(ctx context.Context) ([]tron.ChainParameter, error)
}

func (m *MockParameters) GetChainParameters(ctx context.Context) ([]tron.ChainParameter, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return []tron.ChainParameter{
		{Key: tron.ParamBandwidthPrice, Value: FallbackBandwidthPriceSun},
		{Key: tron.ParamEnergyPrice, Value: FallbackEnergyPriceSun},
		{Key: tron.ParamMaintenanceInterval, Value: 21_600_000},
	}, nil
}
