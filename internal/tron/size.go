// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package tron

// Billable-size accounting. The node charges bandwidth for the fully
// serialized transaction, which for an unsigned candidate includes parts that
// do not exist yet: the signature that will be attached and the cleared
// result placeholder the node serializes alongside. These constants must
// match the node's own accounting exactly or bandwidth billing drifts.
const (
	// SignatureBytes is the serialized size of one standard signature.
	SignatureBytes = 65

	// ResultPlaceholderBytes is the node's cleared-result placeholder,
	// serialized with every transaction.
	ResultPlaceholderBytes = 64

	// ProtobufOverheadBytes covers the tag and length prefixes wrapping the
	// signature and result fields.
	ProtobufOverheadBytes = 5
)

// EstimateBytes computes the billable byte size of a transaction, signed or
// not. For a signed transaction the actual signature bytes are counted; an
// unsigned transaction is assumed to gain exactly one standard signature.
//
// Pure function over a validated transaction (hex fields checked at parse
// time); two hex characters encode one byte.
func (tx *Transaction) EstimateBytes() int64 {
	raw := int64(len(tx.RawDataHex) / 2)

	var sigs int64
	if tx.IsSigned() {
		for _, sig := range tx.Signature {
			sigs += int64(len(sig) / 2)
		}
	} else {
		sigs = SignatureBytes
	}

	return raw + sigs + ResultPlaceholderBytes + ProtobufOverheadBytes
}
