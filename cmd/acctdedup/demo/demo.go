package demo

import (
	"os"
	"time"

	"github.com/Overclock-Validator/acctdedup/cmd/acctdedup/resolve"
	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var Cmd = cobra.Command{
	Use:   "demo",
	Short: "Resolve a small example instruction with freshly generated accounts",
	Run:   run,
}

func run(c *cobra.Command, args []string) {
	acct1 := solana.NewWallet().PublicKey()
	acct2 := solana.NewWallet().PublicKey()
	acct3 := solana.NewWallet().PublicKey()

	acctMetas := []sealevel.AccountMeta{
		{Pubkey: acct1, IsSigner: true, IsWritable: false},
		{Pubkey: acct2, IsSigner: false, IsWritable: false},
		{Pubkey: acct3, IsSigner: false, IsWritable: false},
		{Pubkey: acct2, IsSigner: true, IsWritable: true},
		{Pubkey: acct1, IsSigner: false, IsWritable: true},
	}

	instrAccts, accts, err := sealevel.ResolveInstructionAccounts(acctMetas)
	if err != nil {
		klog.Exitf("failed to resolve example accounts: %s", err)
	}

	if err = resolve.PrintResolution(os.Stdout, acctMetas, instrAccts, accts); err != nil {
		klog.Exitf("failed to write output: %s", err)
	}

	for _, strategy := range sealevel.DedupStrategies {
		start := time.Now()
		deduped := strategy.Dedup(acctMetas)
		klog.Infof("%s: %d accounts in %s", strategy.Name, len(deduped), time.Since(start))
	}
}
