package replay

import "github.com/gagliardetto/solana-go"

var (
	SystemProgramAddr        = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	BpfLoaderUpgradeableAddr = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	BpfLoader2Addr           = solana.MustPublicKeyFromBase58("BPFLoader2111111111111111111111111111111111")
	BpfLoaderDeprecatedAddr  = solana.MustPublicKeyFromBase58("BPFLoader1111111111111111111111111111111111")
	VoteProgramAddr          = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
	StakeProgramAddr         = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
	AddressLookupTableAddr   = solana.MustPublicKeyFromBase58("AddressLookupTab1e1111111111111111111111111")
	ConfigProgramAddr        = solana.MustPublicKeyFromBase58("Config1111111111111111111111111111111111111")
	ComputeBudgetProgramAddr = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
)

var (
	SysvarClockAddr             = solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	SysvarEpochRewardsAddr      = solana.MustPublicKeyFromBase58("SysvarEpochRewards1111111111111111111111111")
	SysvarEpochScheduleAddr     = solana.MustPublicKeyFromBase58("SysvarEpochSchedu1e111111111111111111111111")
	SysvarFeesAddr              = solana.MustPublicKeyFromBase58("SysvarFees111111111111111111111111111111111")
	SysvarInstructionsAddr      = solana.MustPublicKeyFromBase58("Sysvar1nstructions1111111111111111111111111")
	SysvarLastRestartSlotAddr   = solana.MustPublicKeyFromBase58("SysvarLastRestartS1ot1111111111111111111111")
	SysvarRecentBlockHashesAddr = solana.MustPublicKeyFromBase58("SysvarRecentB1ockHashes11111111111111111111")
	SysvarRentAddr              = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
	SysvarSlotHashesAddr        = solana.MustPublicKeyFromBase58("SysvarS1otHashes111111111111111111111111111")
	SysvarSlotHistoryAddr       = solana.MustPublicKeyFromBase58("SysvarS1otHistory11111111111111111111111111")
	SysvarStakeHistoryAddr      = solana.MustPublicKeyFromBase58("SysvarStakeHistory1111111111111111111111111")
)

func isNativeProgram(pubkey solana.PublicKey) bool {
	switch pubkey {
	case SystemProgramAddr, BpfLoaderUpgradeableAddr, BpfLoader2Addr, BpfLoaderDeprecatedAddr,
		VoteProgramAddr, StakeProgramAddr, AddressLookupTableAddr, ConfigProgramAddr, ComputeBudgetProgramAddr:
		return true
	default:
		return false
	}
}

func isSysvar(pubkey solana.PublicKey) bool {
	switch pubkey {
	case SysvarClockAddr, SysvarEpochRewardsAddr, SysvarEpochScheduleAddr, SysvarFeesAddr,
		SysvarInstructionsAddr, SysvarLastRestartSlotAddr, SysvarRecentBlockHashesAddr, SysvarRentAddr,
		SysvarSlotHashesAddr, SysvarSlotHistoryAddr, SysvarStakeHistoryAddr:
		return true
	default:
		return false
	}
}
