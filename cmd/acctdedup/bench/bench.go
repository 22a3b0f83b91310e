package bench

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/Overclock-Validator/acctdedup/pkg/metrics"
	"github.com/Overclock-Validator/acctdedup/pkg/replay"
	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/VividCortex/ewma"
	"github.com/gagliardetto/solana-go"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "bench",
		Short: "Time the account deduplication strategies",
		Run:   run,
	}

	numRefs     int
	numKeys     int
	iterations  int
	batchSize   int
	numWorkers  int
	seed        int64
	metricsAddr string
)

func init() {
	Cmd.Flags().IntVarP(&numRefs, "refs", "r", 64, "Account references per instruction")
	Cmd.Flags().IntVarP(&numKeys, "keys", "k", 16, "Distinct accounts to draw references from")
	Cmd.Flags().IntVarP(&iterations, "iterations", "n", 10000, "Iterations per strategy")
	Cmd.Flags().IntVar(&batchSize, "batch", 0, "Also resolve this many instructions in parallel")
	Cmd.Flags().IntVar(&numWorkers, "workers", 0, "Worker pool size for --batch (default GOMAXPROCS)")
	Cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for generated references")
	Cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address and wait for interrupt when done")
}

func generateAccountMetas(rng *rand.Rand) []sealevel.AccountMeta {
	pool := make([]solana.PublicKey, numKeys)
	for i := range pool {
		pool[i] = solana.NewWallet().PublicKey()
	}

	acctMetas := make([]sealevel.AccountMeta, numRefs)
	for i := range acctMetas {
		acctMetas[i] = sealevel.AccountMeta{
			Pubkey:     pool[rng.Intn(numKeys)],
			IsSigner:   rng.Intn(4) == 0,
			IsWritable: rng.Intn(2) == 0,
		}
	}
	return acctMetas
}

func newProgress() *mpb.Progress {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return mpb.New(mpb.WithOutput(os.Stderr), mpb.WithWidth(48))
}

func addBar(p *mpb.Progress, name string) *mpb.Bar {
	if p == nil {
		return nil
	}
	return p.AddBar(int64(iterations),
		mpb.PrependDecorators(decor.Name(name, decor.WC{W: 10, C: decor.DidentRight})),
		mpb.AppendDecorators(decor.Percentage()),
	)
}

// resolverStrategy is the only strategy whose timings feed the resolver
// metrics; the others do not resolve references.
const resolverStrategy = "resolver"

func benchStrategy(strategy sealevel.DedupStrategy, acctMetas []sealevel.AccountMeta, bar *mpb.Bar, m *metrics.ResolverMetrics) ewma.MovingAverage {
	avg := ewma.NewMovingAverage()
	if strategy.Name != resolverStrategy {
		m = nil
	}

	for i := 0; i < iterations; i++ {
		start := time.Now()
		accts := strategy.Dedup(acctMetas)
		elapsed := time.Since(start)

		avg.Add(float64(elapsed.Nanoseconds()))
		m.Observe(len(acctMetas), len(accts), elapsed, nil)
		if bar != nil {
			bar.Increment()
		}
	}

	return avg
}

func serveMetrics(ctx context.Context, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: metricsAddr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("metrics server: %s", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	klog.Infof("serving metrics on %s/metrics", metricsAddr)
}

func run(c *cobra.Command, args []string) {
	ctx := c.Context()

	if numKeys <= 0 || numRefs < 0 || iterations <= 0 {
		klog.Exitf("--keys and --iterations must be positive, --refs must not be negative")
	}

	var m *metrics.ResolverMetrics
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.NewResolverMetrics(reg)
		serveMetrics(ctx, reg)
	}

	rng := rand.New(rand.NewSource(seed))
	acctMetas := generateAccountMetas(rng)

	klog.Infof("benchmarking %d strategies: %d references over %d keys, %d iterations each", len(sealevel.DedupStrategies), numRefs, numKeys, iterations)

	p := newProgress()
	bars := make([]*mpb.Bar, len(sealevel.DedupStrategies))
	for idx, strategy := range sealevel.DedupStrategies {
		bars[idx] = addBar(p, strategy.Name)
	}

	averages := make([]ewma.MovingAverage, len(sealevel.DedupStrategies))
	for idx, strategy := range sealevel.DedupStrategies {
		averages[idx] = benchStrategy(strategy, acctMetas, bars[idx], m)
	}
	if p != nil {
		p.Wait()
	}

	for idx, strategy := range sealevel.DedupStrategies {
		klog.Infof("%-10s %10.0f ns/op (ewma)", strategy.Name, averages[idx].Value())
	}

	if batchSize > 0 {
		batch := make([][]sealevel.AccountMeta, batchSize)
		for i := range batch {
			batch[i] = acctMetas
		}

		start := time.Now()
		_, err := replay.ResolveBatch(ctx, batch, numWorkers, m)
		if err != nil {
			klog.Exitf("batch resolution failed: %s", err)
		}
		elapsed := time.Since(start)
		klog.Infof("resolved batch of %d in %s (%.0f ns/op)", batchSize, elapsed, float64(elapsed.Nanoseconds())/float64(batchSize))
	}

	if metricsAddr != "" {
		klog.Infof("done; waiting for interrupt")
		<-ctx.Done()
	}
}
