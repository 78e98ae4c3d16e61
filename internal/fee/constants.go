// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package fee

// ─── Fee estimation constants ─────────────────────────────────────────────────
// Conservative defaults and fallback prices. The fallbacks only apply when a
// parameter key is missing from the node's list; actual pricing always comes
// from the chain-parameter cache.

const (
	// DefaultEnergyEstimate is the conservative energy charge for operations
	// that cannot be simulated: unrecognized kinds, failed simulations with
	// no fee limit to derive a bound from. A deliberate safety margin, not a
	// precise estimate.
	DefaultEnergyEstimate int64 = 130_000

	// FallbackBandwidthPriceSun is the bandwidth byte price assumed when the
	// parameter list lacks the bandwidth price key.
	FallbackBandwidthPriceSun int64 = 1_000

	// FallbackEnergyPriceSun is the energy unit price assumed when the
	// parameter list lacks the energy price key.
	FallbackEnergyPriceSun int64 = 420

	// ActivationFeeSun is the one-time surcharge per un-activated recipient
	// of a native transfer.
	ActivationFeeSun int64 = 1_000_000

	// SunPerTRX is the native coin's subdivision factor (6 decimal places).
	SunPerTRX int64 = 1_000_000
)
