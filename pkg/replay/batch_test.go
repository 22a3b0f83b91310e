package replay

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Overclock-Validator/acctdedup/pkg/metrics"
	"github.com/Overclock-Validator/acctdedup/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBatch(t *testing.T, n int) [][]sealevel.AccountMeta {
	rng := rand.New(rand.NewSource(3))
	pool := make([]solana.PublicKey, 8)
	for i := range pool {
		pool[i] = newPubkey(t)
	}

	batch := make([][]sealevel.AccountMeta, n)
	for i := range batch {
		acctMetas := make([]sealevel.AccountMeta, rng.Intn(20))
		for j := range acctMetas {
			acctMetas[j] = sealevel.AccountMeta{Pubkey: pool[rng.Intn(len(pool))], IsSigner: rng.Intn(2) == 0, IsWritable: rng.Intn(2) == 0}
		}
		batch[i] = acctMetas
	}
	return batch
}

func TestResolveBatch_MatchesSequential(t *testing.T) {
	batch := randomBatch(t, 100)
	m := metrics.NewResolverMetrics(prometheus.NewRegistry())

	results, err := ResolveBatch(context.Background(), batch, 4, m)
	require.NoError(t, err)
	require.Len(t, results, len(batch))

	var numRefs int
	for idx, acctMetas := range batch {
		instrAccts, accts, err := sealevel.ResolveInstructionAccounts(acctMetas)
		assert.NoError(t, err)
		assert.Equal(t, instrAccts, results[idx].InstructionAccounts)
		assert.Equal(t, accts, results[idx].Accounts)
		numRefs += len(acctMetas)
	}

	assert.Equal(t, float64(len(batch)), testutil.ToFloat64(m.Resolutions.WithLabelValues("ok")))
	assert.Equal(t, float64(numRefs), testutil.ToFloat64(m.References))
}

func TestResolveBatch_Empty(t *testing.T) {
	results, err := ResolveBatch(context.Background(), nil, 0, nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestResolveBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ResolveBatch(ctx, randomBatch(t, 10), 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
