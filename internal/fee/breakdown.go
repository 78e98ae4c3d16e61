// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"fmt"
	"math/big"
)

// EntryKind distinguishes renewable-resource consumption from native-coin cost.
type EntryKind string

const (
	KindResource EntryKind = "resource"
	KindNative   EntryKind = "native"
)

// Units used by breakdown entries.
const (
	UnitEnergy    = "energy"
	UnitBandwidth = "bandwidth"
	UnitSun       = "sun"
)

// NativeAssetID identifies the native coin in breakdown entries.
const NativeAssetID = "TRX"

// Entry is one line of a fee breakdown. Amounts are always non-negative and
// never zero: zero-amount entries are not emitted at all.
type Entry struct {
	Kind    EntryKind `json:"kind"`
	Unit    string    `json:"unit"`
	AssetID string    `json:"asset_id,omitempty"`
	Amount  *big.Int  `json:"amount"`
}

// Breakdown is the ordered fee breakdown for one candidate transaction.
// Resource entries (energy, then bandwidth) precede the native-coin entry,
// which carries the sum of all overage and surcharge costs in sun.
type Breakdown struct {
	Entries []Entry `json:"entries"`
}

func (b *Breakdown) append(kind EntryKind, unit, assetID string, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	b.Entries = append(b.Entries, Entry{
		Kind:    kind,
		Unit:    unit,
		AssetID: assetID,
		Amount:  new(big.Int).Set(amount),
	})
}

// Resource returns the amount consumed for a resource unit, or zero.
func (b *Breakdown) Resource(unit string) *big.Int {
	for _, e := range b.Entries {
		if e.Kind == KindResource && e.Unit == unit {
			return new(big.Int).Set(e.Amount)
		}
	}
	return new(big.Int)
}

// NativeTotal returns the native-coin cost in sun, or zero.
func (b *Breakdown) NativeTotal() *big.Int {
	for _, e := range b.Entries {
		if e.Kind == KindNative {
			return new(big.Int).Set(e.Amount)
		}
	}
	return new(big.Int)
}

// FormatTRX renders a sun amount as TRX at the coin's fixed 6-decimal
// precision. Sun amounts are integers, so truncation is exact.
func FormatTRX(sun *big.Int) string {
	if sun == nil {
		return "0.000000"
	}
	quo, rem := new(big.Int).QuoRem(sun, big.NewInt(SunPerTRX), new(big.Int))
	return fmt.Sprintf("%s.%06d", quo.String(), rem.Int64())
}
