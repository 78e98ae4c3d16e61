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
	"sync"

	"github.com/dotandev/tronfee/internal/logger"
	"github.com/dotandev/tronfee/internal/tron"
)

// energyPriceFunc lazily resolves the current energy unit price in sun.
type energyPriceFunc func(ctx context.Context) (int64, error)

// EnergyEstimator computes the caller-payable energy of each operation by
// simulating metered operations on the ledger and applying the contract's
// energy-sharing configuration. Every failure path degrades to a documented
// conservative estimate; nothing here is fatal to the fee computation.
type EnergyEstimator struct {
	sim         SimulationClient
	contracts   ContractInfoClient
	energyPrice energyPriceFunc
}

// NewEnergyEstimator wires an estimator from its collaborators.
func NewEnergyEstimator(sim SimulationClient, contracts ContractInfoClient, price energyPriceFunc) *EnergyEstimator {
	return &EnergyEstimator{
		sim:         sim,
		contracts:   contracts,
		energyPrice: price,
	}
}

// EstimateTransaction returns the total caller-payable energy across all
// operations. Operations are independent, so metered ones are simulated
// concurrently.
func (e *EnergyEstimator) EstimateTransaction(ctx context.Context, tx *tron.Transaction, feeLimit int64) int64 {
	contracts := tx.Contracts()
	estimates := make([]int64, len(contracts))

	var wg sync.WaitGroup
	for i, c := range contracts {
		switch c.Type.Classify() {
		case tron.EnergyFree:
			// stays 0
		case tron.EnergyUnknown:
			logger.Logger.Warn("Unknown contract type, billing conservative default",
				"type", c.Type, "default_energy", DefaultEnergyEstimate)
			estimates[i] = DefaultEnergyEstimate
		case tron.EnergyMetered:
			wg.Add(1)
			go func(i int, c tron.Contract) {
				defer wg.Done()
				estimates[i] = e.estimateMetered(ctx, c, feeLimit)
			}(i, c)
		}
	}
	wg.Wait()

	var total int64
	for _, v := range estimates {
		total += v
	}
	return total
}

// estimateMetered simulates one smart-contract invocation and applies the
// deployer's subsidy. Simulation and subsidy lookup have no data dependency
// and run in parallel.
func (e *EnergyEstimator) estimateMetered(ctx context.Context, c tron.Contract, feeLimit int64) int64 {
	val := c.Parameter.Value

	var (
		wg      sync.WaitGroup
		result  *tron.SimulateResult
		simErr  error
		subsidy = tron.DefaultContractSubsidy()
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, simErr = e.sim.SimulateCall(ctx, tron.SimulateRequest{
			OwnerAddress:    val.OwnerAddress,
			ContractAddress: val.ContractAddress,
			Data:            val.Data,
			CallValue:       val.CallValue,
			TokenID:         val.TokenID,
			CallTokenValue:  val.CallTokenValue,
		})
	}()
	go func() {
		defer wg.Done()
		info, err := e.contracts.GetContractInfo(ctx, val.ContractAddress)
		if err != nil {
			// Best-effort: an unreachable contract-info endpoint means the
			// caller is assumed to pay everything.
			logger.Logger.Warn("Contract info lookup failed, assuming caller pays all",
				"contract", val.ContractAddress, "error", err)
			return
		}
		if info != nil {
			subsidy = *info
		}
	}()
	wg.Wait()

	if simErr != nil || result == nil || !result.Success || result.EnergyUsed <= 0 {
		return e.fallbackEstimate(ctx, c, feeLimit, simErr)
	}

	payable := CallerPayableEnergy(result.EnergyUsed, subsidy)

	logger.Logger.Debug("Metered operation estimated",
		"contract", val.ContractAddress,
		"total_energy", result.EnergyUsed,
		"caller_payable", payable,
		"caller_percent", subsidy.CallerResourcePercent,
		"deployer_limit", subsidy.DeployerEnergyLimit,
	)

	return payable
}

// fallbackEstimate is used when simulation fails or reports no energy figure.
// With a fee limit we bound the estimate by the most energy that limit could
// buy; otherwise the conservative default applies.
func (e *EnergyEstimator) fallbackEstimate(ctx context.Context, c tron.Contract, feeLimit int64, simErr error) int64 {
	logger.Logger.Warn("Simulation unavailable, falling back",
		"contract", c.Parameter.Value.ContractAddress,
		"fee_limit", feeLimit,
		"error", simErr,
	)

	if feeLimit > 0 {
		price, err := e.energyPrice(ctx)
		if err != nil || price <= 0 {
			logger.Logger.Warn("Energy price unavailable for fee-limit fallback, billing conservative default",
				"error", err)
			return DefaultEnergyEstimate
		}
		return feeLimit / price
	}

	return DefaultEnergyEstimate
}

// CallerPayableEnergy splits a simulated energy total between the caller and
// the contract's deployer.
//
// The caller's theoretical share rounds up: the estimate must never be lower
// than what the ledger would actually charge. The deployer's share is capped
// by the per-transaction subsidy limit.
func CallerPayableEnergy(total int64, sub tron.ContractSubsidy) int64 {
	if total <= 0 {
		return 0
	}

	pct := sub.CallerResourcePercent
	if pct < 0 {
		pct = 0
	}
	if pct >= 100 || sub.DeployerEnergyLimit <= 0 {
		return total
	}

	callerShare := (total*pct + 99) / 100
	deployerShare := total - callerShare
	if deployerShare > sub.DeployerEnergyLimit {
		deployerShare = sub.DeployerEnergyLimit
	}

	return total - deployerShare
}
