package replay

import (
	"fmt"

	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"
	"k8s.io/klog/v2"
)

type ResolvedInstruction struct {
	ProgramId           solana.PublicKey
	InstructionAccounts []sealevel.InstructionAccount
	Accounts            []sealevel.CanonicalAccount
}

// native programs, sysvars and the transaction's program accounts are
// read-only, regardless of how the message header marks them
func isWritable(programIds solana.PublicKeySlice, am *solana.AccountMeta) bool {
	if !am.IsWritable {
		return false
	}

	if isNativeProgram(am.PublicKey) || isSysvar(am.PublicKey) {
		return false
	}

	return !programIds.Has(am.PublicKey)
}

// AccountMetasFromTx returns, for each instruction of tx, the account
// references the instruction makes, in instruction order.
func AccountMetasFromTx(tx *solana.Transaction) ([][]sealevel.AccountMeta, []solana.PublicKey, error) {
	programIds, err := tx.GetProgramIDs()
	if err != nil {
		return nil, nil, err
	}

	acctMetasPerInstr := make([][]sealevel.AccountMeta, len(tx.Message.Instructions))
	instrProgramIds := make([]solana.PublicKey, len(tx.Message.Instructions))

	for idx, compiledInstr := range tx.Message.Instructions {
		programId, err := tx.ResolveProgramIDIndex(compiledInstr.ProgramIDIndex)
		if err != nil {
			return nil, nil, fmt.Errorf("instruction %d: %w", idx, err)
		}

		ams, err := compiledInstr.ResolveInstructionAccounts(&tx.Message)
		if err != nil {
			return nil, nil, fmt.Errorf("instruction %d: %w", idx, err)
		}

		acctMetasPerInstr[idx] = lo.Map(ams, func(am *solana.AccountMeta, _ int) sealevel.AccountMeta {
			return sealevel.AccountMeta{Pubkey: am.PublicKey, IsSigner: am.IsSigner, IsWritable: isWritable(programIds, am)}
		})
		instrProgramIds[idx] = programId
	}

	return acctMetasPerInstr, instrProgramIds, nil
}

// ResolveTransaction resolves the accounts of every instruction in tx.
func ResolveTransaction(tx *solana.Transaction) ([]ResolvedInstruction, error) {
	acctMetasPerInstr, programIds, err := AccountMetasFromTx(tx)
	if err != nil {
		return nil, err
	}

	resolver := sealevel.NewAccountResolver()
	resolved := make([]ResolvedInstruction, len(acctMetasPerInstr))

	for idx, acctMetas := range acctMetasPerInstr {
		instrAccts, err := resolver.Resolve(acctMetas)
		if err != nil {
			klog.Errorf("failed to resolve accounts for instruction %d (program %s): %s", idx, programIds[idx], err)
			return nil, err
		}

		resolved[idx] = ResolvedInstruction{
			ProgramId:           programIds[idx],
			InstructionAccounts: instrAccts,
			Accounts:            resolver.Accounts(),
		}
	}

	return resolved, nil
}
