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

package fee

import (
	"context"
	"math/big"
	"sync"

	"github.com/dotandev/tronfee/internal/chainparams"
	"github.com/dotandev/tronfee/internal/errors"
	"github.com/dotandev/tronfee/internal/logger"
	"github.com/dotandev/tronfee/internal/telemetry"
	"github.com/dotandev/tronfee/internal/tron"
	"go.opentelemetry.io/otel/attribute"
)

// Composer combines size estimation, energy simulation, activation detection
// and chain-parameter pricing into one fee breakdown. Stateless per call; the
// only shared state is the injected parameter cache.
type Composer struct {
	scope      string
	simulator  SimulationClient
	contracts  ContractInfoClient
	accounts   AccountProbe
	parameters ParameterClient
	cache      *chainparams.Cache
}

// NewComposer wires a composer for one scope (network).
func NewComposer(
	scope string,
	sim SimulationClient,
	contracts ContractInfoClient,
	accounts AccountProbe,
	parameters ParameterClient,
	cache *chainparams.Cache,
) *Composer {
	if cache == nil {
		cache = chainparams.NewCache()
	}
	return &Composer{
		scope:      scope,
		simulator:  sim,
		contracts:  contracts,
		accounts:   accounts,
		parameters: parameters,
		cache:      cache,
	}
}

// Request carries one fee computation's inputs. The transaction is never
// mutated; the resource balances are a point-in-time snapshot owned by the
// caller. FeeLimit (sun) is optional: zero means not supplied.
type Request struct {
	Transaction        *tron.Transaction
	AvailableEnergy    int64
	AvailableBandwidth int64
	FeeLimit           int64
}

// ComputeFee produces the ordered fee breakdown for one candidate
// transaction given the account's currently available resources.
//
// Bandwidth is all-or-nothing: the resource covers the whole byte count or
// none of it. Energy consumes partially, with the shortfall billed in native
// coin. The only fatal failure is an unreachable parameter fetch when overage
// pricing is required; every other collaborator failure degrades to a
// documented conservative fallback.
func (c *Composer) ComputeFee(ctx context.Context, req Request) (*Breakdown, error) {
	if req.Transaction == nil {
		return nil, errors.WrapValidationError("transaction is required")
	}
	if err := req.Transaction.Validate(); err != nil {
		return nil, err
	}
	if req.AvailableEnergy < 0 || req.AvailableBandwidth < 0 {
		return nil, errors.WrapValidationError("resource balances must be non-negative")
	}

	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "fee_compute")
	span.SetAttributes(
		attribute.String("scope", c.scope),
		attribute.Int("tx.contracts", len(req.Transaction.Contracts())),
	)
	defer span.End()

	bandwidthNeeded := req.Transaction.EstimateBytes()

	// Energy simulation and activation probing are independent.
	estimator := NewEnergyEstimator(c.simulator, c.contracts, c.currentEnergyPrice)
	detector := NewActivationDetector(c.accounts)

	var (
		wg            sync.WaitGroup
		energyNeeded  int64
		activationSun *big.Int
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		energyNeeded = estimator.EstimateTransaction(ctx, req.Transaction, req.FeeLimit)
	}()
	go func() {
		defer wg.Done()
		activationSun = detector.DetectFee(ctx, req.Transaction)
	}()
	wg.Wait()

	// Bandwidth: all-or-nothing, mirroring the ledger's non-partial billing.
	var bandwidthConsumed, bandwidthOverage int64
	if req.AvailableBandwidth >= bandwidthNeeded {
		bandwidthConsumed = bandwidthNeeded
	} else {
		bandwidthOverage = bandwidthNeeded
	}

	// Energy: partial consumption, shortfall billed in native coin.
	energyConsumed := energyNeeded
	var energyOverage int64
	if energyNeeded > req.AvailableEnergy {
		energyConsumed = req.AvailableEnergy
		energyOverage = energyNeeded - req.AvailableEnergy
	}

	nativeTotal := new(big.Int).Set(activationSun)

	if bandwidthOverage > 0 || energyOverage > 0 {
		params, err := c.cache.Get(ctx, c.scope, c.parameters.GetChainParameters)
		if err != nil {
			span.RecordError(err)
			logger.Logger.Error("Chain parameter fetch failed, cannot price overage",
				"scope", c.scope, "error", err)
			return nil, errors.WrapParameterFetchFailed(err)
		}

		bandwidthPrice, ok := tron.FindParameter(params, tron.ParamBandwidthPrice)
		if !ok || bandwidthPrice <= 0 {
			bandwidthPrice = FallbackBandwidthPriceSun
		}
		energyPrice, ok := tron.FindParameter(params, tron.ParamEnergyPrice)
		if !ok || energyPrice <= 0 {
			energyPrice = FallbackEnergyPriceSun
		}

		if bandwidthOverage > 0 {
			cost := new(big.Int).Mul(big.NewInt(bandwidthOverage), big.NewInt(bandwidthPrice))
			nativeTotal.Add(nativeTotal, cost)
		}
		if energyOverage > 0 {
			cost := new(big.Int).Mul(big.NewInt(energyOverage), big.NewInt(energyPrice))
			nativeTotal.Add(nativeTotal, cost)
		}
	}

	breakdown := &Breakdown{}
	breakdown.append(KindResource, UnitEnergy, "", big.NewInt(energyConsumed))
	breakdown.append(KindResource, UnitBandwidth, "", big.NewInt(bandwidthConsumed))
	breakdown.append(KindNative, UnitSun, NativeAssetID, nativeTotal)

	span.SetAttributes(
		attribute.Int64("fee.bandwidth_needed", bandwidthNeeded),
		attribute.Int64("fee.energy_needed", energyNeeded),
		attribute.Int64("fee.energy_overage", energyOverage),
		attribute.String("fee.native_total_sun", nativeTotal.String()),
	)

	logger.Logger.Info("Fee computed",
		"scope", c.scope,
		"bandwidth_needed", bandwidthNeeded,
		"bandwidth_consumed", bandwidthConsumed,
		"energy_needed", energyNeeded,
		"energy_consumed", energyConsumed,
		"energy_overage", energyOverage,
		"native_total_sun", nativeTotal,
	)

	return breakdown, nil
}

// currentEnergyPrice resolves the energy unit price through the cache for the
// fee-limit fallback path.
func (c *Composer) currentEnergyPrice(ctx context.Context) (int64, error) {
	params, err := c.cache.Get(ctx, c.scope, c.parameters.GetChainParameters)
	if err != nil {
		return 0, err
	}
	price, ok := tron.FindParameter(params, tron.ParamEnergyPrice)
	if !ok || price <= 0 {
		return FallbackEnergyPriceSun, nil
	}
	return price, nil
}
