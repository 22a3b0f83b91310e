package sealevel

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// instruction errors
var (
	InstrErrNotEnoughAccountKeys = errors.New("InstrErrNotEnoughAccountKeys")
	InstrErrMissingAccount       = errors.New("InstrErrMissingAccount")
)

// account resolution errors
var (
	ErrUnknownAccount     = errors.New("ErrUnknownAccount")
	ErrInvalidAccountMeta = errors.New("ErrInvalidAccountMeta")
)

// UnknownAccountError is returned when a reference's key cannot be mapped
// onto a canonical account slot. It matches both ErrUnknownAccount and
// InstrErrMissingAccount.
type UnknownAccountError struct {
	Pubkey solana.PublicKey
}

func NewUnknownAccountError(pubkey solana.PublicKey) error {
	return &UnknownAccountError{Pubkey: pubkey}
}

func (err *UnknownAccountError) Error() string {
	return "ErrUnknownAccount: " + err.Pubkey.String()
}

func (err *UnknownAccountError) Is(target error) bool {
	return target == ErrUnknownAccount || target == InstrErrMissingAccount
}
