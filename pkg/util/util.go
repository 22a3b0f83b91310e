package util

import (
	"bytes"
	"encoding/binary"
	"slices"

	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"
	"github.com/zeebo/blake3"
)

// DedupePubkeys returns the distinct keys of pubkeys in ascending byte
// order. pubkeys is left untouched.
func DedupePubkeys(pubkeys []solana.PublicKey) []solana.PublicKey {
	sorted := slices.Clone(pubkeys)
	slices.SortFunc(sorted, func(a, b solana.PublicKey) int {
		return bytes.Compare(a[:], b[:])
	})
	return slices.Compact(sorted)
}

// SortedAccounts returns accts ordered by key rather than by slot. Keys
// are already distinct in a canonical set.
func SortedAccounts(accts []sealevel.CanonicalAccount) []sealevel.CanonicalAccount {
	byKey := lo.KeyBy(accts, func(acct sealevel.CanonicalAccount) solana.PublicKey { return acct.Pubkey })
	keys := DedupePubkeys(lo.Keys(byKey))
	return lo.Map(keys, func(pk solana.PublicKey, _ int) sealevel.CanonicalAccount { return byKey[pk] })
}

func writeFlag(hasher *blake3.Hasher, flag bool) {
	if flag {
		_, _ = hasher.Write([]byte{1})
	} else {
		_, _ = hasher.Write([]byte{0})
	}
}

// CalculateResolutionHash digests a resolution result. Two resolutions
// hash equal iff they assign the same slots with the same flags.
func CalculateResolutionHash(instrAccts []sealevel.InstructionAccount, accts []sealevel.CanonicalAccount) []byte {
	hasher := blake3.New()

	var lenBytes [8]byte
	binary.LittleEndian.PutUint64(lenBytes[:], uint64(len(accts)))
	_, _ = hasher.Write(lenBytes[:])

	for _, acct := range accts {
		_, _ = hasher.Write(acct.Pubkey[:])
		writeFlag(hasher, acct.IsSigner)
		writeFlag(hasher, acct.IsWritable)
	}

	binary.LittleEndian.PutUint64(lenBytes[:], uint64(len(instrAccts)))
	_, _ = hasher.Write(lenBytes[:])

	var idxBytes [24]byte
	for _, instrAcct := range instrAccts {
		binary.LittleEndian.PutUint64(idxBytes[0:], instrAcct.IndexInTransaction)
		binary.LittleEndian.PutUint64(idxBytes[8:], instrAcct.IndexInCaller)
		binary.LittleEndian.PutUint64(idxBytes[16:], instrAcct.IndexInCallee)
		_, _ = hasher.Write(idxBytes[:])
		writeFlag(hasher, instrAcct.IsSigner)
		writeFlag(hasher, instrAcct.IsWritable)
	}

	return hasher.Sum(nil)
}
