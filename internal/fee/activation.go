// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"
	"math/big"
	"sync"

	"github.com/dotandev/tronfee/internal/logger"
	"github.com/dotandev/tronfee/internal/tron"
)

// ActivationDetector finds native-transfer recipients that do not exist
// on-chain yet and prices the one-time account activation surcharge.
type ActivationDetector struct {
	probe AccountProbe
}

// NewActivationDetector wires a detector onto an account probe.
func NewActivationDetector(probe AccountProbe) *ActivationDetector {
	return &ActivationDetector{probe: probe}
}

// DetectFee returns the total activation surcharge in sun for tx.
//
// Every recipient of a positive-amount native transfer is probed
// concurrently. A probe error counts as "not activated" — over-estimating
// here is safe, silently dropping the surcharge is not. The ledger charges
// activation once per new account, so repeated recipients are checked once.
func (d *ActivationDetector) DetectFee(ctx context.Context, tx *tron.Transaction) *big.Int {
	recipients := make(map[string]struct{})
	for _, c := range tx.Contracts() {
		if c.IsNativeTransfer() && c.Parameter.Value.Amount > 0 && c.Parameter.Value.ToAddress != "" {
			recipients[c.Parameter.Value.ToAddress] = struct{}{}
		}
	}
	if len(recipients) == 0 {
		return new(big.Int)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		missing int64
	)
	for addr := range recipients {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			exists, err := d.probe.AccountExists(ctx, addr)
			if err != nil {
				logger.Logger.Warn("Account probe failed, treating recipient as not activated",
					"address", addr, "error", err)
				exists = false
			}
			if !exists {
				mu.Lock()
				missing++
				mu.Unlock()
			}
		}(addr)
	}
	wg.Wait()

	if missing == 0 {
		return new(big.Int)
	}

	total := new(big.Int).Mul(big.NewInt(missing), big.NewInt(ActivationFeeSun))
	logger.Logger.Info("Activation surcharge applies",
		"unactivated_recipients", missing,
		"surcharge_sun", total,
	)
	return total
}
