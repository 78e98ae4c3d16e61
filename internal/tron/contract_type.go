// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package tron

// ContractType is the operation kind tag used by the node's JSON API.
type ContractType string

// The closed set of operation kinds the engine recognizes. The node may
// introduce new kinds; those classify as EnergyUnknown and are billed at the
// conservative default rather than rejected.
const (
	TransferContract                ContractType = "TransferContract"
	TransferAssetContract           ContractType = "TransferAssetContract"
	TriggerSmartContract            ContractType = "TriggerSmartContract"
	CreateSmartContract             ContractType = "CreateSmartContract"
	FreezeBalanceContract           ContractType = "FreezeBalanceContract"
	UnfreezeBalanceContract         ContractType = "UnfreezeBalanceContract"
	FreezeBalanceV2Contract         ContractType = "FreezeBalanceV2Contract"
	UnfreezeBalanceV2Contract       ContractType = "UnfreezeBalanceV2Contract"
	WithdrawExpireUnfreezeContract  ContractType = "WithdrawExpireUnfreezeContract"
	CancelAllUnfreezeV2Contract     ContractType = "CancelAllUnfreezeV2Contract"
	DelegateResourceContract        ContractType = "DelegateResourceContract"
	UnDelegateResourceContract      ContractType = "UnDelegateResourceContract"
	VoteWitnessContract             ContractType = "VoteWitnessContract"
	WitnessCreateContract           ContractType = "WitnessCreateContract"
	WitnessUpdateContract           ContractType = "WitnessUpdateContract"
	AccountCreateContract           ContractType = "AccountCreateContract"
	AccountUpdateContract           ContractType = "AccountUpdateContract"
	SetAccountIdContract            ContractType = "SetAccountIdContract"
	AccountPermissionUpdateContract ContractType = "AccountPermissionUpdateContract"
	AssetIssueContract              ContractType = "AssetIssueContract"
	UpdateAssetContract             ContractType = "UpdateAssetContract"
	ParticipateAssetIssueContract   ContractType = "ParticipateAssetIssueContract"
	UnfreezeAssetContract           ContractType = "UnfreezeAssetContract"
	ProposalCreateContract          ContractType = "ProposalCreateContract"
	ProposalApproveContract         ContractType = "ProposalApproveContract"
	ProposalDeleteContract          ContractType = "ProposalDeleteContract"
	ExchangeCreateContract          ContractType = "ExchangeCreateContract"
	ExchangeInjectContract          ContractType = "ExchangeInjectContract"
	ExchangeWithdrawContract        ContractType = "ExchangeWithdrawContract"
	ExchangeTransactionContract     ContractType = "ExchangeTransactionContract"
	UpdateSettingContract           ContractType = "UpdateSettingContract"
	UpdateEnergyLimitContract       ContractType = "UpdateEnergyLimitContract"
	ClearABIContract                ContractType = "ClearABIContract"
	WithdrawBalanceContract         ContractType = "WithdrawBalanceContract"
	UpdateBrokerageContract         ContractType = "UpdateBrokerageContract"
)

// EnergyClass is the energy-billing classification of an operation kind.
type EnergyClass int

const (
	// EnergyFree operations never consume energy (transfers and the fixed
	// set of system contract kinds).
	EnergyFree EnergyClass = iota

	// EnergyMetered operations consume energy proportional to execution and
	// must be simulated.
	EnergyMetered

	// EnergyUnknown operations are kinds this build does not recognize.
	// They are billed at the conservative default estimate so the engine
	// never under-charges.
	EnergyUnknown
)

func (c EnergyClass) String() string {
	switch c {
	case EnergyFree:
		return "free"
	case EnergyMetered:
		return "metered"
	default:
		return "unknown"
	}
}

// Classify maps an operation kind onto its energy class. The switch is the
// single place new contract kinds get an explicit billing decision.
func (t ContractType) Classify() EnergyClass {
	switch t {
	case TransferContract, TransferAssetContract:
		return EnergyFree
	case TriggerSmartContract:
		return EnergyMetered
	case FreezeBalanceContract, UnfreezeBalanceContract,
		FreezeBalanceV2Contract, UnfreezeBalanceV2Contract,
		WithdrawExpireUnfreezeContract, CancelAllUnfreezeV2Contract,
		DelegateResourceContract, UnDelegateResourceContract,
		VoteWitnessContract, WitnessCreateContract, WitnessUpdateContract,
		AccountCreateContract, AccountUpdateContract, SetAccountIdContract,
		AccountPermissionUpdateContract,
		AssetIssueContract, UpdateAssetContract,
		ParticipateAssetIssueContract, UnfreezeAssetContract,
		ProposalCreateContract, ProposalApproveContract, ProposalDeleteContract,
		ExchangeCreateContract, ExchangeInjectContract,
		ExchangeWithdrawContract, ExchangeTransactionContract,
		UpdateSettingContract, UpdateEnergyLimitContract, ClearABIContract,
		WithdrawBalanceContract, UpdateBrokerageContract:
		return EnergyFree
	default:
		return EnergyUnknown
	}
}
