package service

import (
	"context"
	"testing"

	"OwlTurf/internal/model"
	"OwlTurf/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateProvisionsWallet(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u1")
	assert.Equal(t, model.AuthEmail, u.AuthProvider)

	w, err := repository.NewWalletRepository(env.db).GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
}

func TestUserCreateConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	ctx := context.Background()

	_, err := env.users.Create(ctx, &CreateUserRequest{UID: "u1", PhoneNumber: strPtr("+910000000000")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.users.Create(ctx, &CreateUserRequest{UID: "u2", Email: strPtr("u1@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.users.Create(ctx, &CreateUserRequest{UID: "u3"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.users.Create(ctx, &CreateUserRequest{UID: "u4", PhoneNumber: strPtr("+911111111111")})
	require.NoError(t, err)
	_, err = env.users.Create(ctx, &CreateUserRequest{UID: "u5", PhoneNumber: strPtr("+911111111111")})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	env.user(t, "u2")
	ctx := context.Background()

	_, err := env.users.Update(ctx, "u2", &UpdateUserRequest{Email: strPtr("u1@example.com")})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.users.Update(ctx, "u2", &UpdateUserRequest{Email: strPtr("  ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	u, err := env.users.Update(ctx, "u2", &UpdateUserRequest{
		Email:  strPtr("u2@example.com"),
		Name:   strPtr("Asha"),
		Sports: []string{"badminton"},
	})
	require.NoError(t, err)
	require.NotNil(t, u.Name)
	assert.Equal(t, "Asha", *u.Name)
	assert.Equal(t, []string{"badminton"}, model.Strings(u.Sports))

	_, err = env.users.Update(ctx, "ghost", &UpdateUserRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	env.user(t, "u2")
	ctx := context.Background()

	wallets := NewWalletService(env.db, env.logger)
	_, err := wallets.ApplyTransaction(ctx, "u1", &TransactionRequest{Amount: decimal.NewFromInt(50), Type: model.TxCredit})
	require.NoError(t, err)
	_, err = NewAddressService(env.db, env.logger).Create(ctx, "u1", addressReq("home", true))
	require.NoError(t, err)
	_, err = NewBookingService(env.db, env.logger).Create(ctx, "u1", bookingReq())
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(ctx, "u1"))

	_, err = env.users.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = wallets.GetWallet(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	for _, m := range []interface{}{&model.Wallet{}, &model.Transaction{}, &model.Address{}, &model.Booking{}} {
		var n int64
		require.NoError(t, env.db.Model(m).Count(&n).Error)
		if _, isWallet := m.(*model.Wallet); isWallet {
			assert.EqualValues(t, 1, n, "u2 keeps its wallet")
			continue
		}
		assert.Zero(t, n)
	}

	assert.ErrorIs(t, env.users.Delete(ctx, "u1"), ErrNotFound)
}

func TestUserList(t *testing.T) {
	env := newTestEnv(t)
	env.user(t, "u1")
	env.user(t, "u2")
	env.user(t, "u3")

	list, err := env.users.List(context.Background(), repository.Page{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
