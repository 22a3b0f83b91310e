package sealevel

import (
	"github.com/gagliardetto/solana-go"
	"k8s.io/klog/v2"
)

// AccountResolver collapses an instruction's account references into one
// canonical slot per distinct key. Slots are numbered densely in the order
// their key is first seen, and a slot's signer and writable flags are the
// OR of every reference to that key.
//
// An AccountResolver may be reused sequentially. It must not be shared
// between goroutines.
type AccountResolver struct {
	keyToIndex map[solana.PublicKey]uint64
	accounts   []CanonicalAccount
}

func NewAccountResolver() *AccountResolver {
	return &AccountResolver{keyToIndex: make(map[solana.PublicKey]uint64)}
}

func (resolver *AccountResolver) reset(sizeHint int) {
	resolver.keyToIndex = make(map[solana.PublicKey]uint64, sizeHint)
	resolver.accounts = make([]CanonicalAccount, 0, sizeHint)
}

// Resolve maps every reference in accountMetas onto its canonical slot and
// returns one InstructionAccount per reference, in input order. The flags
// of each returned entry are those of the canonical slot as merged up to and
// including that reference.
//
// On error no InstructionAccounts are returned and the resolver holds no
// accounts.
func (resolver *AccountResolver) Resolve(accountMetas []AccountMeta) ([]InstructionAccount, error) {
	resolver.reset(len(accountMetas))

	instructionAccts := make([]InstructionAccount, 0, len(accountMetas))

	for instructionAcctIndex, accountMeta := range accountMetas {
		indexInTx, seen := resolver.keyToIndex[accountMeta.Pubkey]
		if !seen {
			indexInTx = uint64(len(resolver.accounts))
			resolver.keyToIndex[accountMeta.Pubkey] = indexInTx
			resolver.accounts = append(resolver.accounts, CanonicalAccount{Pubkey: accountMeta.Pubkey})
		}

		// invariant check: every key in keyToIndex has a slot. Unreachable
		// unless the two fall out of step.
		if indexInTx >= uint64(len(resolver.accounts)) {
			klog.Errorf("instruction references unknown account %s", accountMeta.Pubkey)
			resolver.reset(0)
			return nil, NewUnknownAccountError(accountMeta.Pubkey)
		}
		resolver.accounts[indexInTx].widen(accountMeta)

		// invariant check: the key was registered above, so the lookup
		// cannot miss.
		indexInCaller, err := resolver.IndexOfAccount(accountMeta.Pubkey)
		if err != nil {
			klog.Errorf("instruction references unknown account %s", accountMeta.Pubkey)
			resolver.reset(0)
			return nil, err
		}

		canonical := resolver.accounts[indexInTx]
		instructionAccts = append(instructionAccts, InstructionAccount{
			IndexInTransaction: indexInTx,
			IndexInCaller:      indexInCaller,
			IndexInCallee:      uint64(instructionAcctIndex),
			IsSigner:           canonical.IsSigner,
			IsWritable:         canonical.IsWritable,
		})
	}

	if klog.V(2).Enabled() {
		klog.Infof("resolved %d account references into %d accounts", len(accountMetas), len(resolver.accounts))
	}

	return instructionAccts, nil
}

// IndexOfAccount returns the canonical slot assigned to pubkey.
func (resolver *AccountResolver) IndexOfAccount(pubkey solana.PublicKey) (uint64, error) {
	idx, ok := resolver.keyToIndex[pubkey]
	if !ok {
		return 0, NewUnknownAccountError(pubkey)
	}
	return idx, nil
}

func (resolver *AccountResolver) AccountAtIndex(idx uint64) (CanonicalAccount, error) {
	if idx >= uint64(len(resolver.accounts)) {
		return CanonicalAccount{}, InstrErrNotEnoughAccountKeys
	}
	return resolver.accounts[idx], nil
}

func (resolver *AccountResolver) NumAccounts() uint64 {
	return uint64(len(resolver.accounts))
}

// Accounts returns a copy of the canonical accounts in first-seen order,
// such that Accounts()[i] is the slot with IndexInTransaction i.
func (resolver *AccountResolver) Accounts() []CanonicalAccount {
	accts := make([]CanonicalAccount, len(resolver.accounts))
	copy(accts, resolver.accounts)
	return accts
}

// ResolveInstructionAccounts resolves accountMetas with a fresh resolver and
// returns both the per-reference resolution and the canonical accounts.
func ResolveInstructionAccounts(accountMetas []AccountMeta) ([]InstructionAccount, []CanonicalAccount, error) {
	resolver := NewAccountResolver()

	instructionAccts, err := resolver.Resolve(accountMetas)
	if err != nil {
		return nil, nil, err
	}

	return instructionAccts, resolver.Accounts(), nil
}
