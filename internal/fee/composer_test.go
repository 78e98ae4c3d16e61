// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	stderrors "errors"

	"github.com/dotandev/tronfee/internal/errors"
	"github.com/dotandev/tronfee/internal/tron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer(sim SimulationClient, contracts ContractInfoClient, accounts AccountProbe, params ParameterClient) *Composer {
	if sim == nil {
		sim = &MockSimulator{}
	}
	if contracts == nil {
		contracts = &MockContractInfo{}
	}
	if accounts == nil {
		accounts = &MockAccountProbe{}
	}
	if params == nil {
		params = &MockParameters{}
	}
	return NewComposer("testnet", sim, contracts, accounts, params, nil)
}

func TestComputeFeeResourcesCoverEverything(t *testing.T) {
	paramCalls := 0
	params := &MockParameters{
		GetFunc: func(ctx context.Context) ([]tron.ChainParameter, error) {
			paramCalls++
			return nil, fmt.Errorf("should not be called")
		},
	}
	c := newTestComposer(nil, nil, nil, params)

	tx := transferTx("41d0b6", 1_000_000)
	b, err := c.ComputeFee(context.Background(), Request{
		Transaction:        tx,
		AvailableEnergy:    0,
		AvailableBandwidth: 10_000,
	})
	require.NoError(t, err)

	// 66 + 65 + 64 + 5 bytes, fully covered; transfer burns no energy.
	assert.Equal(t, big.NewInt(200), b.Resource(UnitBandwidth))
	assert.Zero(t, b.Resource(UnitEnergy).Sign())
	assert.Zero(t, b.NativeTotal().Sign())
	assert.Equal(t, 0, paramCalls, "covered resources must not trigger a parameter fetch")
}

func TestComputeFeeBandwidthIsAllOrNothing(t *testing.T) {
	c := newTestComposer(nil, nil, nil, nil)

	// One byte short: the whole size is billed, none is consumed.
	b, err := c.ComputeFee(context.Background(), Request{
		Transaction:        transferTx("41d0b6", 1),
		AvailableBandwidth: 199,
	})
	require.NoError(t, err)

	assert.Zero(t, b.Resource(UnitBandwidth).Sign())
	assert.Equal(t, big.NewInt(200*FallbackBandwidthPriceSun), b.NativeTotal())
}

func TestComputeFeeEnergyConsumesPartially(t *testing.T) {
	sim := &MockSimulator{
		SimulateFunc: func(ctx context.Context, req tron.SimulateRequest) (*tron.SimulateResult, error) {
			return &tron.SimulateResult{Success: true, EnergyUsed: 100_000}, nil
		},
	}
	c := newTestComposer(sim, nil, nil, nil)

	b, err := c.ComputeFee(context.Background(), Request{
		Transaction:        triggerTx("41c0ffee"),
		AvailableEnergy:    60_000,
		AvailableBandwidth: 10_000,
	})
	require.NoError(t, err)

	// consumed + overage must equal the simulated need
	assert.Equal(t, big.NewInt(60_000), b.Resource(UnitEnergy))
	overageCost := new(big.Int).Mul(big.NewInt(40_000), big.NewInt(FallbackEnergyPriceSun))
	assert.Equal(t, overageCost, b.NativeTotal())
}

func TestComputeFeeActivationSurchargeWithCoveredResources(t *testing.T) {
	accounts := &MockAccountProbe{
		ExistsFunc: func(ctx context.Context, addr string) (bool, error) {
			return false, nil
		},
	}
	c := newTestComposer(nil, nil, accounts, nil)

	b, err := c.ComputeFee(context.Background(), Request{
		Transaction:        transferTx("41d0b6", 1_000_000),
		AvailableBandwidth: 10_000,
	})
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(ActivationFeeSun), b.NativeTotal())
}

func TestComputeFeeParameterFetchFailureIsFatalForOverage(t *testing.T) {
	params := &MockParameters{
		GetFunc: func(ctx context.Context) ([]tron.ChainParameter, error) {
			return nil, fmt.Errorf("node unreachable")
		},
	}
	c := newTestComposer(nil, nil, nil, params)

	_, err := c.ComputeFee(context.Background(), Request{
		Transaction:        transferTx("41d0b6", 1),
		AvailableBandwidth: 0,
	})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrParameterFetchFailed))
}

func TestComputeFeeFallbackPricesWhenParametersIncomplete(t *testing.T) {
	params := &MockParameters{
		GetFunc: func(ctx context.Context) ([]tron.ChainParameter, error) {
			// Reachable node, but the pricing keys are absent.
			return []tron.ChainParameter{
				{Key: tron.ParamMaintenanceInterval, Value: 21_600_000},
			}, nil
		},
	}
	c := newTestComposer(nil, nil, nil, params)

	b, err := c.ComputeFee(context.Background(), Request{
		Transaction:        transferTx("41d0b6", 1),
		AvailableBandwidth: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(200*FallbackBandwidthPriceSun), b.NativeTotal())
}

func TestComputeFeeEntryOrderingAndNoZeroEntries(t *testing.T) {
	sim := &MockSimulator{
		SimulateFunc: func(ctx context.Context, req tron.SimulateRequest) (*tron.SimulateResult, error) {
			return &tron.SimulateResult{Success: true, EnergyUsed: 50_000}, nil
		},
	}
	tx := &tron.Transaction{
		RawDataHex: transferTx("41d0b6", 1).RawDataHex,
		RawData: tron.RawData{
			Contract: append(
				transferTx("41d0b6", 1).RawData.Contract,
				triggerTx("41c0ffee").RawData.Contract...,
			),
		},
	}
	c := newTestComposer(sim, nil, nil, nil)

	b, err := c.ComputeFee(context.Background(), Request{
		Transaction:        tx,
		AvailableEnergy:    10_000,
		AvailableBandwidth: 100, // short: all-or-nothing overage
	})
	require.NoError(t, err)

	require.Len(t, b.Entries, 2)
	assert.Equal(t, UnitEnergy, b.Entries[0].Unit)
	assert.Equal(t, KindNative, b.Entries[1].Kind)
	for _, e := range b.Entries {
		assert.Positive(t, e.Amount.Sign(), "zero-amount entries must not be emitted")
	}
}

func TestComputeFeeIsDeterministic(t *testing.T) {
	sim := &MockSimulator{
		SimulateFunc: func(ctx context.Context, req tron.SimulateRequest) (*tron.SimulateResult, error) {
			return &tron.SimulateResult{Success: true, EnergyUsed: 77_000}, nil
		},
	}
	c := newTestComposer(sim, nil, nil, nil)
	req := Request{
		Transaction:        triggerTx("41c0ffee"),
		AvailableEnergy:    12_345,
		AvailableBandwidth: 50,
	}

	first, err := c.ComputeFee(context.Background(), req)
	require.NoError(t, err)
	second, err := c.ComputeFee(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeFeeRejectsInvalidRequests(t *testing.T) {
	c := newTestComposer(nil, nil, nil, nil)

	tests := []struct {
		name string
		req  Request
	}{
		{"nil transaction", Request{}},
		{
			"negative energy balance",
			Request{Transaction: transferTx("41d0b6", 1), AvailableEnergy: -1},
		},
		{
			"negative bandwidth balance",
			Request{Transaction: transferTx("41d0b6", 1), AvailableBandwidth: -1},
		},
		{
			"transaction without contracts",
			Request{Transaction: &tron.Transaction{RawDataHex: "aabb"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ComputeFee(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}
