// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "estimates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListEstimates(t *testing.T) {
	store := openTestStore(t)

	e := &Estimate{
		TxID:           "7c2d4206c03a883dd9066d620335dc1be272a8dc733cfa3f6d10308faa37facc",
		Network:        "nile",
		BandwidthBytes: 200,
		EnergyUnits:    64285,
		NativeTotalSun: "1100000",
		Breakdown:      []string{"energy 64285", "bandwidth 200", "TRX 1.100000"},
	}
	require.NoError(t, store.SaveEstimate(e))
	assert.NotZero(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())

	estimates, err := store.ListEstimates(10)
	require.NoError(t, err)
	require.Len(t, estimates, 1)

	got := estimates[0]
	assert.Equal(t, e.TxID, got.TxID)
	assert.Equal(t, "nile", got.Network)
	assert.Equal(t, int64(200), got.BandwidthBytes)
	assert.Equal(t, int64(64285), got.EnergyUnits)
	assert.Equal(t, "1100000", got.NativeTotalSun)
	assert.Equal(t, e.Breakdown, got.Breakdown)
}

func TestListEstimatesNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveEstimate(&Estimate{
			TxID:           string(rune('a' + i)),
			Network:        "mainnet",
			NativeTotalSun: "0",
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		}))
	}

	estimates, err := store.ListEstimates(10)
	require.NoError(t, err)
	require.Len(t, estimates, 3)

	assert.Equal(t, "c", estimates[0].TxID)
	assert.Equal(t, "a", estimates[2].TxID)
}

func TestListEstimatesHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveEstimate(&Estimate{Network: "mainnet", NativeTotalSun: "0"}))
	}

	estimates, err := store.ListEstimates(2)
	require.NoError(t, err)
	assert.Len(t, estimates, 2)

	// A non-positive limit falls back to the default page size.
	estimates, err = store.ListEstimates(0)
	require.NoError(t, err)
	assert.Len(t, estimates, 5)
}

func TestListEstimatesEmptyStore(t *testing.T) {
	store := openTestStore(t)

	estimates, err := store.ListEstimates(10)
	require.NoError(t, err)
	assert.Empty(t, estimates)
}
