package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/domain"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/services"
)

func TestLedgerIDsStrictlyIncreasingUnderConcurrency(t *testing.T) {
	_, stores := newFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	epoch := time.Unix(1700000000, 0)
	ledger := services.NewLedgerService(stores.Transactions, logger,
		services.WithClock(func() time.Time { return epoch }))
	ctx := context.Background()

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ledger.Record(ctx, 2000, domain.TxDeposit, 1, 0, 1))
		}()
	}
	wg.Wait()

	history, err := ledger.HistoryForAccount(ctx, 2000)
	require.NoError(t, err)
	require.Len(t, history, n)

	seen := map[int64]bool{}
	for _, tx := range history {
		assert.False(t, seen[tx.TransactionID])
		seen[tx.TransactionID] = true
		assert.GreaterOrEqual(t, tx.TransactionID, int64(1))
		assert.LessOrEqual(t, tx.TransactionID, int64(n), "IDs must be gapless")
		assert.Equal(t, epoch.Unix(), tx.Timestamp)
	}
}

func TestLedgerHistoryFiltersByAccount(t *testing.T) {
	svcs, stores := newFixture(t)
	ctx := context.Background()
	seedCustomer(t, stores, 2000, 10)
	seedCustomer(t, stores, 2001, 10)

	_, err := svcs.Accounts.Deposit(ctx, 2000, 5)
	require.NoError(t, err)
	_, err = svcs.Accounts.Deposit(ctx, 2001, 7)
	require.NoError(t, err)

	history, err := svcs.Ledger.HistoryForAccount(ctx, 2001)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, float32(7), history[0].Amount)
}
