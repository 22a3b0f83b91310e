package replay

import (
	"testing"

	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPubkey(t *testing.T) solana.PublicKey {
	privateKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return privateKey.PublicKey()
}

func TestResolveTransaction(t *testing.T) {
	payer, dest, program := newPubkey(t), newPubkey(t), newPubkey(t)

	ix1 := solana.NewInstruction(program, solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(dest).WRITE(),
		solana.Meta(payer).SIGNER(),
	}, []byte{1})

	ix2 := solana.NewInstruction(solana.SystemProgramID, solana.AccountMetaSlice{
		solana.Meta(dest),
		solana.Meta(program).WRITE(),
	}, []byte{2})

	tx, err := solana.NewTransaction([]solana.Instruction{ix1, ix2}, solana.Hash{}, solana.TransactionPayer(payer))
	require.NoError(t, err)

	resolved, err := ResolveTransaction(tx)
	require.NoError(t, err)
	require.Len(t, resolved, 2)

	assert.Equal(t, program, resolved[0].ProgramId)
	assert.Equal(t, []sealevel.InstructionAccount{
		{IndexInTransaction: 0, IndexInCaller: 0, IndexInCallee: 0, IsSigner: true, IsWritable: true},
		{IndexInTransaction: 1, IndexInCaller: 1, IndexInCallee: 1, IsSigner: false, IsWritable: true},
		{IndexInTransaction: 0, IndexInCaller: 0, IndexInCallee: 2, IsSigner: true, IsWritable: true},
	}, resolved[0].InstructionAccounts)
	assert.Equal(t, []sealevel.CanonicalAccount{
		{Pubkey: payer, IsSigner: true, IsWritable: true},
		{Pubkey: dest, IsSigner: false, IsWritable: true},
	}, resolved[0].Accounts)

	// the program account is demoted to read-only even though ix2 asked for it writable
	assert.Equal(t, solana.SystemProgramID, resolved[1].ProgramId)
	assert.Equal(t, []sealevel.CanonicalAccount{
		{Pubkey: dest, IsSigner: false, IsWritable: true},
		{Pubkey: program, IsSigner: false, IsWritable: false},
	}, resolved[1].Accounts)
}

func TestAccountMetasFromTx_NoInstructionAccounts(t *testing.T) {
	payer := newPubkey(t)

	ix := solana.NewInstruction(solana.SystemProgramID, solana.AccountMetaSlice{}, []byte{0})
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{}, solana.TransactionPayer(payer))
	require.NoError(t, err)

	acctMetas, programIds, err := AccountMetasFromTx(tx)
	assert.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{solana.SystemProgramID}, programIds)
	require.Len(t, acctMetas, 1)
	assert.Empty(t, acctMetas[0])
}

func TestIsWritable_DemotesNativeProgramsAndSysvars(t *testing.T) {
	program, dest := newPubkey(t), newPubkey(t)
	programIds := solana.PublicKeySlice{program}

	assert.True(t, isWritable(programIds, solana.Meta(dest).WRITE()))
	assert.False(t, isWritable(programIds, solana.Meta(dest)))
	assert.False(t, isWritable(programIds, solana.Meta(program).WRITE()))
	assert.False(t, isWritable(programIds, solana.Meta(StakeProgramAddr).WRITE()))
	assert.False(t, isWritable(programIds, solana.Meta(ComputeBudgetProgramAddr).WRITE()))
	assert.False(t, isWritable(programIds, solana.Meta(SysvarClockAddr).WRITE()))
	assert.False(t, isWritable(programIds, solana.Meta(SysvarInstructionsAddr).WRITE()))
}

func TestResolveTransaction_SysvarReferenceIsReadOnly(t *testing.T) {
	payer, program := newPubkey(t), newPubkey(t)

	ix := solana.NewInstruction(program, solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(SysvarRentAddr).WRITE(),
		solana.Meta(VoteProgramAddr).WRITE(),
	}, []byte{0})

	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{}, solana.TransactionPayer(payer))
	require.NoError(t, err)

	resolved, err := ResolveTransaction(tx)
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	assert.Equal(t, []sealevel.CanonicalAccount{
		{Pubkey: payer, IsSigner: true, IsWritable: true},
		{Pubkey: SysvarRentAddr, IsSigner: false, IsWritable: false},
		{Pubkey: VoteProgramAddr, IsSigner: false, IsWritable: false},
	}, resolved[0].Accounts)
}
