package sealevel

import (
	"github.com/gagliardetto/solana-go"
	"k8s.io/klog/v2"
)

// DedupFunc reduces a list of account references to its canonical accounts,
// in first-seen order.
type DedupFunc func(accountMetas []AccountMeta) []CanonicalAccount

type DedupStrategy struct {
	Name  string
	Dedup DedupFunc
}

// DedupStrategies lists the interchangeable deduplication routines. They all
// produce the same canonical accounts for the same input.
var DedupStrategies = []DedupStrategy{
	{Name: "resolver", Dedup: DedupAccountsResolver},
	{Name: "nested", Dedup: DedupAccountsNested},
	{Name: "map", Dedup: DedupAccountsMap},
	{Name: "indexed", Dedup: func(accountMetas []AccountMeta) []CanonicalAccount {
		accts, _ := DedupAccountsIndexed(accountMetas)
		return accts
	}},
}

func DedupAccountsResolver(accountMetas []AccountMeta) []CanonicalAccount {
	resolver := NewAccountResolver()
	_, err := resolver.Resolve(accountMetas)
	if err != nil {
		klog.Errorf("failed to deduplicate %d account references: %s", len(accountMetas), err)
		return nil
	}
	return resolver.Accounts()
}

// DedupAccountsNested scans the accounts collected so far for every
// reference, so it is quadratic in the number of distinct accounts.
func DedupAccountsNested(accountMetas []AccountMeta) []CanonicalAccount {
	dedupAccts := make([]CanonicalAccount, 0, len(accountMetas))

	for _, accountMeta := range accountMetas {
		duplicateIndex := -1
		for index, acct := range dedupAccts {
			if acct.Pubkey == accountMeta.Pubkey {
				duplicateIndex = index
				break
			}
		}

		if duplicateIndex != -1 {
			dedupAccts[duplicateIndex].widen(accountMeta)
		} else {
			dedupAccts = append(dedupAccts, CanonicalAccount{Pubkey: accountMeta.Pubkey, IsSigner: accountMeta.IsSigner, IsWritable: accountMeta.IsWritable})
		}
	}

	return dedupAccts
}

func DedupAccountsMap(accountMetas []AccountMeta) []CanonicalAccount {
	indices := make(map[solana.PublicKey]int, len(accountMetas))
	dedupAccts := make([]CanonicalAccount, 0, len(accountMetas))

	for _, accountMeta := range accountMetas {
		if idx, ok := indices[accountMeta.Pubkey]; ok {
			dedupAccts[idx].widen(accountMeta)
			continue
		}
		indices[accountMeta.Pubkey] = len(dedupAccts)
		dedupAccts = append(dedupAccts, CanonicalAccount{Pubkey: accountMeta.Pubkey, IsSigner: accountMeta.IsSigner, IsWritable: accountMeta.IsWritable})
	}

	return dedupAccts
}

// DedupAccountsIndexed is DedupAccountsMap that also records, for each
// canonical account, the positions in accountMetas that referenced it.
func DedupAccountsIndexed(accountMetas []AccountMeta) ([]CanonicalAccount, [][]uint64) {
	indices := make(map[solana.PublicKey]int, len(accountMetas))
	dedupAccts := make([]CanonicalAccount, 0, len(accountMetas))
	positions := make([][]uint64, 0, len(accountMetas))

	for pos, accountMeta := range accountMetas {
		idx, ok := indices[accountMeta.Pubkey]
		if !ok {
			idx = len(dedupAccts)
			indices[accountMeta.Pubkey] = idx
			dedupAccts = append(dedupAccts, CanonicalAccount{Pubkey: accountMeta.Pubkey})
			positions = append(positions, nil)
		}

		if accountMeta.IsSigner || accountMeta.IsWritable {
			dedupAccts[idx].widen(accountMeta)
		}
		positions[idx] = append(positions[idx], uint64(pos))
	}

	return dedupAccts, positions
}
