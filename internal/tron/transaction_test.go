// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package tron

import (
	"testing"

	stderrors "errors"

	"github.com/dotandev/tronfee/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTransferJSON = `{
	"txID": "7c2d4206c03a883dd9066d620335dc1be272a8dc733cfa3f6d10308faa37facc",
	"raw_data_hex": "0a02b5e22208ac57d4b67e27e3e040f0b0d2ba9e2d",
	"raw_data": {
		"contract": [
			{
				"type": "TransferContract",
				"parameter": {
					"type_url": "type.googleapis.com/protocol.TransferContract",
					"value": {
						"owner_address": "41e552f6487585c2b58bc2c9bb4492bc1f17132cd0",
						"to_address": "41d0b69631440f0a494aa51f89bca16f4b8b5b57a9",
						"amount": 1000000
					}
				}
			}
		],
		"expiration": 1578778024000,
		"timestamp": 1578777967285
	},
	"signature": []
}`

func TestParseTransaction(t *testing.T) {
	tx, err := ParseTransaction([]byte(sampleTransferJSON))
	require.NoError(t, err)

	assert.False(t, tx.IsSigned())
	require.Len(t, tx.Contracts(), 1)

	c := tx.Contracts()[0]
	assert.Equal(t, TransferContract, c.Type)
	assert.True(t, c.IsNativeTransfer())
	assert.Equal(t, int64(1000000), c.Parameter.Value.Amount)
	assert.Equal(t, "41d0b69631440f0a494aa51f89bca16f4b8b5b57a9", c.Parameter.Value.ToAddress)
}

func TestParseTransactionRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{{`},
		{"missing raw_data_hex", `{"raw_data": {"contract": [{"type": "TransferContract"}]}}`},
		{"invalid raw_data_hex", `{"raw_data_hex": "zz", "raw_data": {"contract": [{"type": "TransferContract"}]}}`},
		{"invalid signature hex", `{"raw_data_hex": "aabb", "signature": ["not-hex"], "raw_data": {"contract": [{"type": "TransferContract"}]}}`},
		{"no contracts", `{"raw_data_hex": "aabb", "raw_data": {"contract": []}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTransaction([]byte(tt.json))
			assert.Error(t, err)
		})
	}
}

func TestParseTransactionErrorIsTyped(t *testing.T) {
	_, err := ParseTransaction([]byte(`{{`))
	assert.True(t, stderrors.Is(err, errors.ErrInvalidTransaction))
}

func TestFindParameter(t *testing.T) {
	params := []ChainParameter{
		{Key: ParamBandwidthPrice, Value: 1000},
		{Key: ParamEnergyPrice, Value: 420},
	}

	v, ok := FindParameter(params, ParamEnergyPrice)
	assert.True(t, ok)
	assert.Equal(t, int64(420), v)

	_, ok = FindParameter(params, ParamMaintenanceInterval)
	assert.False(t, ok)
}
