// Package accountsfile reads lists of account references from YAML.
//
// The expected layout is
//
//	accounts:
//	  - pubkey: 11111111111111111111111111111111
//	    signer: true
//	    writable: false
package accountsfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"gopkg.in/yaml.v3"
)

var ErrInvalidPubkey = errors.New("invalid pubkey")

type accountEntry struct {
	Pubkey   string `yaml:"pubkey"`
	Signer   bool   `yaml:"signer"`
	Writable bool   `yaml:"writable"`
}

type document struct {
	Accounts []accountEntry `yaml:"accounts"`
}

func decodePubkey(s string) (solana.PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w %q: %s", ErrInvalidPubkey, s, err)
	}
	if len(b) != solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("%w %q: decoded to %d bytes", ErrInvalidPubkey, s, len(b))
	}
	return solana.PublicKeyFromBytes(b), nil
}

func Parse(data []byte) ([]sealevel.AccountMeta, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	acctMetas := make([]sealevel.AccountMeta, 0, len(doc.Accounts))
	for idx, entry := range doc.Accounts {
		pubkey, err := decodePubkey(entry.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", idx, err)
		}
		acctMetas = append(acctMetas, sealevel.AccountMeta{Pubkey: pubkey, IsSigner: entry.Signer, IsWritable: entry.Writable})
	}

	return acctMetas, nil
}

func Load(path string) ([]sealevel.AccountMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal renders acctMetas in the layout Parse reads.
func Marshal(acctMetas []sealevel.AccountMeta) ([]byte, error) {
	doc := document{Accounts: make([]accountEntry, 0, len(acctMetas))}
	for _, acctMeta := range acctMetas {
		doc.Accounts = append(doc.Accounts, accountEntry{Pubkey: acctMeta.Pubkey.String(), Signer: acctMeta.IsSigner, Writable: acctMeta.IsWritable})
	}
	return yaml.Marshal(&doc)
}
