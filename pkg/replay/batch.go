package replay

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Overclock-Validator/acctdedup/pkg/metrics"
	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/panjf2000/ants/v2"
	"k8s.io/klog/v2"
)

type BatchResult struct {
	InstructionAccounts []sealevel.InstructionAccount
	Accounts            []sealevel.CanonicalAccount
}

type resolveTask struct {
	idx       int
	acctMetas []sealevel.AccountMeta
}

// ResolveBatch resolves each list in batch independently on a pool of
// numWorkers goroutines. Results are returned in batch order. If any list
// fails, the error of the lowest failing index is returned and no results
// are. Cancelling ctx stops new lists from being scheduled.
func ResolveBatch(ctx context.Context, batch [][]sealevel.AccountMeta, numWorkers int, m *metrics.ResolverMetrics) ([]BatchResult, error) {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(batch))
	errs := make([]error, len(batch))

	wg := sync.WaitGroup{}

	pool, err := ants.NewPoolWithFunc(numWorkers, func(i interface{}) {
		defer wg.Done()

		task := i.(resolveTask)
		start := time.Now()

		resolver := sealevel.NewAccountResolver()
		instrAccts, err := resolver.Resolve(task.acctMetas)
		m.Observe(len(task.acctMetas), int(resolver.NumAccounts()), time.Since(start), err)
		if err != nil {
			errs[task.idx] = err
			return
		}

		results[task.idx] = BatchResult{InstructionAccounts: instrAccts, Accounts: resolver.Accounts()}
	})
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var scheduleErr error
	for idx, acctMetas := range batch {
		if err = ctx.Err(); err != nil {
			scheduleErr = err
			break
		}

		wg.Add(1)
		err = pool.Invoke(resolveTask{idx: idx, acctMetas: acctMetas})
		if err != nil {
			wg.Done()
			scheduleErr = err
			break
		}
	}

	wg.Wait()

	if scheduleErr != nil {
		klog.Errorf("stopped scheduling account resolution batch: %s", scheduleErr)
		return nil, scheduleErr
	}

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("batch entry %d: %w", idx, err)
		}
	}

	return results, nil
}
