package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*testEnv, *CartService) {
	t.Helper()
	env := newTestEnv(t)
	env.user(t, "u1")
	products := NewProductService(env.db, env.logger)
	_, err := products.Create(context.Background(), &ProductRequest{
		ID: "jersey", Name: "Home jersey", Category: "apparel", MRP: 1000, Price: 750, Sizes: []string{"M", "L"},
	})
	require.NoError(t, err)
	return env, NewCartService(env.db, env.logger)
}

func TestCartMergesSameLine(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("M")})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)
	require.NotNil(t, first.Product)
	assert.Equal(t, 25, first.Product.Discount)

	merged, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("M"), Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 3, merged.Quantity)

	other, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("L")})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	noSize, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey"})
	require.NoError(t, err)
	noSizeAgain, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey"})
	require.NoError(t, err)
	assert.Equal(t, noSize.ID, noSizeAgain.ID)
	assert.Equal(t, 2, noSizeAgain.Quantity)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestCartAddUnknownReferences(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "ghost", &CartItemRequest{ProductID: "jersey"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Add(ctx, "u1", &CartItemRequest{ProductID: "boots"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartUpdateSizeCollision(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	m, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("M")})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("L")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u1", m.ID, &UpdateCartItemRequest{Size: strPtr("L")})
	assert.ErrorIs(t, err, ErrConflict)

	five := 5
	got, err := svc.Update(ctx, "u1", m.ID, &UpdateCartItemRequest{Quantity: &five, Size: strPtr("XL")})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	require.NotNil(t, got.Size)
	assert.Equal(t, "XL", *got.Size)
}

func TestCartRemoveAndClear(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	a, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("M")})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("L")})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "u1", a.ID))
	assert.ErrorIs(t, svc.Remove(ctx, "u1", a.ID), ErrNotFound)

	n, err := svc.Clear(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductDeleteRemovesCartLines(t *testing.T) {
	env, svc := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey"})
	require.NoError(t, err)

	products := NewProductService(env.db, env.logger)
	require.NoError(t, products.Delete(ctx, "jersey"))
	assert.ErrorIs(t, products.Delete(ctx, "jersey"), ErrNotFound)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCartConcurrentAddsMergeIntoOneLine(t *testing.T) {
	_, svc := newCartFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, "u1", &CartItemRequest{ProductID: "jersey", Size: strPtr("M"), Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 8, list[0].Quantity)
}
