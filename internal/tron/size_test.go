// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package tron

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateBytesUnsigned(t *testing.T) {
	// 132 hex chars = 66 raw bytes; unsigned adds one standard signature:
	// 66 + 65 + 64 + 5 = 200
	tx := &Transaction{
		RawDataHex: strings.Repeat("ab", 66),
	}

	assert.Equal(t, int64(200), tx.EstimateBytes())
}

func TestEstimateBytesSigned(t *testing.T) {
	tests := []struct {
		name     string
		rawBytes int
		sigs     []int // signature sizes in bytes
		expected int64
	}{
		{
			name:     "one standard signature",
			rawBytes: 66,
			sigs:     []int{65},
			expected: 66 + 65 + 64 + 5,
		},
		{
			name:     "multisig counts every signature",
			rawBytes: 100,
			sigs:     []int{65, 65, 65},
			expected: 100 + 195 + 64 + 5,
		},
		{
			name:     "non-standard signature length is counted as-is",
			rawBytes: 80,
			sigs:     []int{71},
			expected: 80 + 71 + 64 + 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{
				RawDataHex: strings.Repeat("00", tt.rawBytes),
			}
			for _, n := range tt.sigs {
				tx.Signature = append(tx.Signature, strings.Repeat("ff", n))
			}

			assert.Equal(t, tt.expected, tx.EstimateBytes())
		})
	}
}

func TestEstimateBytesMatchesSignedAndUnsignedForStandardSig(t *testing.T) {
	// Adding the standard 65-byte signature must not change the estimate.
	unsigned := &Transaction{RawDataHex: strings.Repeat("cd", 132)}
	signed := &Transaction{
		RawDataHex: unsigned.RawDataHex,
		Signature:  []string{strings.Repeat("ee", 65)},
	}

	assert.Equal(t, unsigned.EstimateBytes(), signed.EstimateBytes())
}
