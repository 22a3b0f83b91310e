package sealevel

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const AccountMetaSize = 34

const InstructionAccountSize = 26

// AccountMeta is a single account reference made by an instruction,
// in callee-local order.
type AccountMeta struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// CanonicalAccount is the deduplicated record for one account across all
// of an instruction's references to it.
type CanonicalAccount struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

type InstructionAccount struct {
	IndexInTransaction uint64
	IndexInCaller      uint64
	IndexInCallee      uint64
	IsSigner           bool
	IsWritable         bool
}

func (acct CanonicalAccount) AccountMeta() AccountMeta {
	return AccountMeta{Pubkey: acct.Pubkey, IsSigner: acct.IsSigner, IsWritable: acct.IsWritable}
}

func (acct *CanonicalAccount) widen(accountMeta AccountMeta) {
	acct.IsSigner = acct.IsSigner || accountMeta.IsSigner
	acct.IsWritable = acct.IsWritable || accountMeta.IsWritable
}

func readFlag(decoder *bin.Decoder, name string) (bool, error) {
	b, err := decoder.ReadUint8()
	if err != nil {
		return false, err
	}
	if b > 1 {
		return false, fmt.Errorf("%w: %s byte %d", ErrInvalidAccountMeta, name, b)
	}
	return b == 1, nil
}

func (accountMeta *AccountMeta) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	pk, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	accountMeta.Pubkey = solana.PublicKeyFromBytes(pk)

	accountMeta.IsSigner, err = readFlag(decoder, "is_signer")
	if err != nil {
		return err
	}

	accountMeta.IsWritable, err = readFlag(decoder, "is_writable")
	return err
}

func (accountMeta AccountMeta) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteBytes(accountMeta.Pubkey[:], false)
	if err != nil {
		return err
	}

	err = encoder.WriteBool(accountMeta.IsSigner)
	if err != nil {
		return err
	}

	return encoder.WriteBool(accountMeta.IsWritable)
}

func (instrAcct *InstructionAccount) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	instrAcct.IndexInTransaction, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}

	instrAcct.IndexInCaller, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}

	instrAcct.IndexInCallee, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}

	instrAcct.IsSigner, err = readFlag(decoder, "is_signer")
	if err != nil {
		return err
	}

	instrAcct.IsWritable, err = readFlag(decoder, "is_writable")
	return err
}

func (instrAcct InstructionAccount) MarshalWithEncoder(encoder *bin.Encoder) error {
	_ = encoder.WriteUint64(instrAcct.IndexInTransaction, bin.LE)
	_ = encoder.WriteUint64(instrAcct.IndexInCaller, bin.LE)
	_ = encoder.WriteUint64(instrAcct.IndexInCallee, bin.LE)
	_ = encoder.WriteBool(instrAcct.IsSigner)
	return encoder.WriteBool(instrAcct.IsWritable)
}

// UnmarshalAccountMetas decodes a packed list of AccountMeta records.
// The input length must be a multiple of AccountMetaSize.
func UnmarshalAccountMetas(data []byte) ([]AccountMeta, error) {
	if len(data)%AccountMetaSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrInvalidAccountMeta, len(data), AccountMetaSize)
	}

	decoder := bin.NewBinDecoder(data)
	accountMetas := make([]AccountMeta, len(data)/AccountMetaSize)

	for idx := range accountMetas {
		err := accountMetas[idx].UnmarshalWithDecoder(decoder)
		if err != nil {
			return nil, fmt.Errorf("account meta %d: %w", idx, err)
		}
	}

	return accountMetas, nil
}
