// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package tron

// ChainParameter is one named ledger-wide setting, as returned by the node's
// getchainparameters endpoint. Read-only; refreshed per maintenance window.
type ChainParameter struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

// Parameter keys the fee engine reads.
const (
	// ParamBandwidthPrice is the native-coin price of one bandwidth byte, in sun.
	ParamBandwidthPrice = "getTransactionFee"

	// ParamEnergyPrice is the native-coin price of one energy unit, in sun.
	ParamEnergyPrice = "getEnergyFee"

	// ParamMaintenanceInterval is the maintenance window cadence in milliseconds.
	ParamMaintenanceInterval = "getMaintenanceTimeInterval"

	// ParamCreateAccountFee is the system-contract fee for activating a new
	// account, in sun.
	ParamCreateAccountFee = "getCreateNewAccountFeeInSystemContract"
)

// FindParameter returns the value for key and whether it was present.
func FindParameter(params []ChainParameter, key string) (int64, bool) {
	for _, p := range params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return 0, false
}
