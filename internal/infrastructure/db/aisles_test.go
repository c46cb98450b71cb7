package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/pkg/apperr"
)

func TestCreateAisleWeights(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	token, _ := register(t, d, "alice")

	store, err := d.CreateStore(ctx, token, "Shop")
	require.NoError(t, err)

	first, err := d.CreateAisle(ctx, token, store.ID, "Dairy")
	require.NoError(t, err)
	assert.Equal(t, 0.0, first.SortWeight, "first aisle sits at weight zero")

	second, err := d.CreateAisle(ctx, token, store.ID, "Bakery")
	require.NoError(t, err)
	assert.Equal(t, 1.0, second.SortWeight, "later aisles land after the current max")

	third, err := d.CreateAisle(ctx, token, store.ID, "Produce")
	require.NoError(t, err)
	assert.Equal(t, 2.0, third.SortWeight)
}

func TestCreateAisleWeightAfterReorder(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	token, _ := register(t, d, "alice")

	store, err := d.CreateStore(ctx, token, "Shop")
	require.NoError(t, err)
	a1, err := d.CreateAisle(ctx, token, store.ID, "Dairy")
	require.NoError(t, err)

	// drag to a fractional weight; next create still lands after the max
	err = d.ChangeSortWeights(ctx, token, entity.EditWeight{
		Aisles: []entity.ItemWeight{{ID: string(a1.ID), SortWeight: 4.5}},
	})
	require.NoError(t, err)

	a2, err := d.CreateAisle(ctx, token, store.ID, "Bakery")
	require.NoError(t, err)
	assert.Equal(t, 5.5, a2.SortWeight)
}

func TestRenameAisle(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	token, _ := register(t, d, "alice")

	store, err := d.CreateStore(ctx, token, "Shop")
	require.NoError(t, err)
	aisle, err := d.CreateAisle(ctx, token, store.ID, "Diary")
	require.NoError(t, err)
	require.NoError(t, d.RenameAisle(ctx, token, aisle.ID, "Dairy"))

	got, err := d.GetStore(ctx, token, store.ID)
	require.NoError(t, err)
	require.Len(t, got.Aisles, 1)
	assert.Equal(t, "Dairy", got.Aisles[0].Name)
}

func TestAislePermissionDenied(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	tokenA, _ := register(t, d, "alice")
	tokenB, _ := register(t, d, "mallory")

	store, err := d.CreateStore(ctx, tokenA, "Shop")
	require.NoError(t, err)

	_, err = d.CreateAisle(ctx, tokenB, store.ID, "Sweets")
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))

	aisle, err := d.CreateAisle(ctx, tokenA, store.ID, "Dairy")
	require.NoError(t, err)

	err = d.RenameAisle(ctx, tokenB, aisle.ID, "Mine")
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))

	err = d.DeleteAisle(ctx, tokenB, aisle.ID)
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))
}

func TestDeleteAisleCascades(t *testing.T) {
	ctx := context.Background()
	d, mem := newTestDB(t)
	token, _ := register(t, d, "alice")

	store, err := d.CreateStore(ctx, token, "Shop")
	require.NoError(t, err)
	aisle, err := d.CreateAisle(ctx, token, store.ID, "Dairy")
	require.NoError(t, err)
	product, err := d.CreateProduct(ctx, token, aisle.ID, "Milk")
	require.NoError(t, err)

	require.NoError(t, d.DeleteAisle(ctx, token, aisle.ID))

	for _, key := range []string{
		aisleKey(aisle.ID),
		productKey(product.ID),
		productsInAisleKey(aisle.ID),
	} {
		exists, err := mem.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, "key %q should be gone", key)
	}

	// the store itself is untouched
	got, err := d.GetStore(ctx, token, store.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Aisles)
}
