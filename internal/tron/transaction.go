// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package tron

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dotandev/tronfee/internal/errors"
)

// Transaction mirrors the full-node JSON representation of a TRON
// transaction. It is an immutable input to the fee engine: nothing in this
// package or in internal/fee mutates it after parsing.
type Transaction struct {
	TxID       string   `json:"txID,omitempty"`
	RawDataHex string   `json:"raw_data_hex"`
	RawData    RawData  `json:"raw_data"`
	Signature  []string `json:"signature,omitempty"`
}

// RawData carries the serialized body of a transaction plus its ordered
// contract (operation) list.
type RawData struct {
	Contract      []Contract `json:"contract"`
	RefBlockBytes string     `json:"ref_block_bytes,omitempty"`
	RefBlockHash  string     `json:"ref_block_hash,omitempty"`
	Expiration    int64      `json:"expiration,omitempty"`
	Timestamp     int64      `json:"timestamp,omitempty"`
	FeeLimit      int64      `json:"fee_limit,omitempty"`
}

// Contract is a single operation inside a transaction.
type Contract struct {
	Type      ContractType      `json:"type"`
	Parameter ContractParameter `json:"parameter"`
}

// ContractParameter wraps the type-specific payload the way the node's JSON
// API does (google.protobuf.Any flattened to a type_url + value pair).
type ContractParameter struct {
	TypeURL string        `json:"type_url,omitempty"`
	Value   ContractValue `json:"value"`
}

// ContractValue is the union of the payload fields the fee engine reads.
// Fields irrelevant to the operation's type are simply absent in the JSON.
type ContractValue struct {
	OwnerAddress string `json:"owner_address,omitempty"`
	ToAddress    string `json:"to_address,omitempty"`
	Amount       int64  `json:"amount,omitempty"`
	AssetName    string `json:"asset_name,omitempty"`

	ContractAddress string `json:"contract_address,omitempty"`
	Data            string `json:"data,omitempty"`
	CallValue       int64  `json:"call_value,omitempty"`
	CallTokenValue  int64  `json:"call_token_value,omitempty"`
	TokenID         int64  `json:"token_id,omitempty"`
}

// ParseTransaction decodes and validates a transaction from its node JSON
// form. Hex fields are checked here so the size estimator can stay a pure
// function over validated input.
func ParseTransaction(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, errors.WrapInvalidTransaction(err)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Validate checks the hex-encoded fields and the contract list.
func (tx *Transaction) Validate() error {
	if tx.RawDataHex == "" {
		return errors.WrapValidationError("transaction has no raw_data_hex")
	}
	if _, err := hex.DecodeString(tx.RawDataHex); err != nil {
		return errors.WrapInvalidTransaction(fmt.Errorf("raw_data_hex is not valid hex: %w", err))
	}
	for i, sig := range tx.Signature {
		if _, err := hex.DecodeString(sig); err != nil {
			return errors.WrapInvalidTransaction(fmt.Errorf("signature %d is not valid hex: %w", i, err))
		}
	}
	if len(tx.RawData.Contract) == 0 {
		return errors.WrapValidationError("transaction has no contracts")
	}
	return nil
}

// Contracts returns the ordered operation list.
func (tx *Transaction) Contracts() []Contract {
	return tx.RawData.Contract
}

// IsSigned reports whether the transaction carries at least one signature.
func (tx *Transaction) IsSigned() bool {
	return len(tx.Signature) > 0
}

// IsNativeTransfer reports whether the contract moves native coin (TRX).
func (c *Contract) IsNativeTransfer() bool {
	return c.Type == TransferContract
}
