package resolve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestPrintResolution(t *testing.T) {
	acctMetas := []sealevel.AccountMeta{
		{Pubkey: solana.SystemProgramID, IsSigner: true},
		{Pubkey: solana.SystemProgramID, IsWritable: true},
	}

	instrAccts, accts, err := sealevel.ResolveInstructionAccounts(acctMetas)
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = PrintResolution(&buf, acctMetas, instrAccts, accts)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Deduplicated accounts (1):\n  [0] 11111111111111111111111111111111 signer=true writable=true\n")
	assert.Contains(t, out, "  11111111111111111111111111111111 tx=0 caller=0 callee=1 signer=true writable=true\n")
	assert.Contains(t, out, "Fingerprint: ")
}

func TestPrintResolution_AccountsByKey(t *testing.T) {
	var low, high solana.PublicKey
	low[0] = 1
	high[0] = 2

	acctMetas := []sealevel.AccountMeta{
		{Pubkey: high, IsWritable: true},
		{Pubkey: low, IsSigner: true},
	}

	instrAccts, accts, err := sealevel.ResolveInstructionAccounts(acctMetas)
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = PrintResolution(&buf, acctMetas, instrAccts, accts)
	assert.NoError(t, err)

	_, byKey, found := strings.Cut(buf.String(), "Accounts by key:\n")
	assert.True(t, found)
	assert.True(t, strings.HasPrefix(byKey,
		"  "+low.String()+" signer=true writable=false\n"+
			"  "+high.String()+" signer=false writable=true\n"))
}
