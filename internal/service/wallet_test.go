package service

import (
	"context"
	"sync"
	"testing"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(amount string, kind string) *TransactionRequest {
	return &TransactionRequest{Amount: decimal.RequireFromString(amount), Type: kind}
}

func TestWalletLedger(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	svc := NewWalletService(env.db, env.logger)
	ctx := context.Background()

	w, err := svc.GetWallet(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())

	credit, err := svc.ApplyTransaction(ctx, "u1", tx("500", model.TxCredit))
	require.NoError(t, err)
	assert.Equal(t, model.TxSuccess, credit.Status)

	_, err = svc.ApplyTransaction(ctx, "u1", tx("1500", model.TxDebit))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	w, err = svc.GetWallet(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "500.00", w.Balance.StringFixed(2))

	_, err = svc.ApplyTransaction(ctx, "u1", tx("300", model.TxDebit))
	require.NoError(t, err)

	w, err = svc.GetWallet(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "200.00", w.Balance.StringFixed(2))

	list, err := svc.ListTransactions(ctx, "u1", repository.Page{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, item := range list {
		assert.Equal(t, w.ID, item.WalletID)
	}

	got, err := svc.GetTransaction(ctx, "u1", credit.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TxCredit, got.Type)
}

func TestWalletRejectsBadAmounts(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	svc := NewWalletService(env.db, env.logger)
	ctx := context.Background()

	_, err := svc.ApplyTransaction(ctx, "u1", tx("0", model.TxCredit))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.ApplyTransaction(ctx, "u1", tx("-5", model.TxCredit))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.ApplyTransaction(ctx, "u1", tx("5", "refund"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.ListTransactions(ctx, "u1", repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWalletUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWalletService(env.db, env.logger)
	ctx := context.Background()

	_, err := svc.GetWallet(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ApplyTransaction(ctx, "ghost", tx("10", model.TxCredit))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWalletTransactionScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	env.user(t, "u2")
	svc := NewWalletService(env.db, env.logger)
	ctx := context.Background()

	rec, err := svc.ApplyTransaction(ctx, "u1", tx("10", model.TxCredit))
	require.NoError(t, err)

	_, err = svc.GetTransaction(ctx, "u2", rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWalletConcurrentDebits(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	svc := NewWalletService(env.db, env.logger)
	ctx := context.Background()

	_, err := svc.ApplyTransaction(ctx, "u1", tx("500", model.TxCredit))
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ApplyTransaction(ctx, "u1", tx("100", model.TxDebit)); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrInsufficientBalance)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	w, err := svc.GetWallet(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())

	list, err := svc.ListTransactions(ctx, "u1", repository.Page{})
	require.NoError(t, err)
	assert.Len(t, list, 6)
}

func TestWalletRoundsToCents(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	svc := NewWalletService(env.db, env.logger)

	rec, err := svc.ApplyTransaction(context.Background(), "u1", tx("10.005", model.TxCredit))
	require.NoError(t, err)
	assert.Equal(t, "10.01", rec.Amount.StringFixed(2))
}
