package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/Overclock-Validator/acctdedup/cmd/acctdedup/bench"
	"github.com/Overclock-Validator/acctdedup/cmd/acctdedup/demo"
	"github.com/Overclock-Validator/acctdedup/cmd/acctdedup/resolve"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var cmd = cobra.Command{
	Use:   "acctdedup",
	Short: "Resolve and deduplicate instruction account references",
}

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		&bench.Cmd,
		&demo.Cmd,
		&resolve.Cmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}
