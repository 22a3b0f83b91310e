package resolve

import (
	"fmt"
	"io"
	"os"

	"github.com/Overclock-Validator/acctdedup/pkg/accountsfile"
	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/Overclock-Validator/acctdedup/pkg/util"
	"github.com/segmentio/textio"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "resolve <accounts-file>",
		Short: "Resolve an instruction's account references",
		Args:  cobra.ExactArgs(1),
		Run:   run,
	}

	binaryInput bool
)

func init() {
	Cmd.Flags().BoolVarP(&binaryInput, "binary", "b", false, "Read packed 34-byte account metas instead of YAML")
}

func loadAccountMetas(path string) ([]sealevel.AccountMeta, error) {
	if !binaryInput {
		return accountsfile.Load(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return sealevel.UnmarshalAccountMetas(data)
}

func run(c *cobra.Command, args []string) {
	path := args[0]

	acctMetas, err := loadAccountMetas(path)
	if err != nil {
		klog.Exitf("failed to load account references from %s: %s", path, err)
	}

	klog.V(1).Infof("loaded %d account references from %s", len(acctMetas), path)

	instrAccts, accts, err := sealevel.ResolveInstructionAccounts(acctMetas)
	if err != nil {
		klog.Exitf("failed to resolve account references: %s", err)
	}

	if err = PrintResolution(os.Stdout, acctMetas, instrAccts, accts); err != nil {
		klog.Exitf("failed to write output: %s", err)
	}
}

// PrintResolution writes a human-readable summary of a resolution to w.
func PrintResolution(w io.Writer, acctMetas []sealevel.AccountMeta, instrAccts []sealevel.InstructionAccount, accts []sealevel.CanonicalAccount) error {
	fmt.Fprintf(w, "Deduplicated accounts (%d):\n", len(accts))

	pw := textio.NewPrefixWriter(w, "  ")
	for idx, acct := range accts {
		fmt.Fprintf(pw, "[%d] %s signer=%t writable=%t\n", idx, acct.Pubkey, acct.IsSigner, acct.IsWritable)
	}
	if err := pw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Accounts by key:\n")

	pw = textio.NewPrefixWriter(w, "  ")
	for _, acct := range util.SortedAccounts(accts) {
		fmt.Fprintf(pw, "%s signer=%t writable=%t\n", acct.Pubkey, acct.IsSigner, acct.IsWritable)
	}
	if err := pw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Instruction accounts (%d):\n", len(instrAccts))

	pw = textio.NewPrefixWriter(w, "  ")
	for idx, instrAcct := range instrAccts {
		fmt.Fprintf(pw, "%s tx=%d caller=%d callee=%d signer=%t writable=%t\n",
			acctMetas[idx].Pubkey, instrAcct.IndexInTransaction, instrAcct.IndexInCaller, instrAcct.IndexInCallee, instrAcct.IsSigner, instrAcct.IsWritable)
	}
	if err := pw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Fingerprint: %x\n", util.CalculateResolutionHash(instrAccts, accts))
	return err
}
