package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/pkg/apperr"
)

func seedAisle(t *testing.T, d *DB, token string) (entity.StoreID, entity.AisleID) {
	t.Helper()
	ctx := context.Background()
	store, err := d.CreateStore(ctx, token, "Shop")
	require.NoError(t, err)
	aisle, err := d.CreateAisle(ctx, token, store.ID, "Dairy")
	require.NoError(t, err)
	return store.ID, aisle.ID
}

func TestCreateProductDefaults(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	token, _ := register(t, d, "alice")
	_, aisleID := seedAisle(t, d, token)

	product, err := d.CreateProduct(ctx, token, aisleID, "Milk")
	require.NoError(t, err)
	assert.Equal(t, "Milk", product.Name)
	assert.Equal(t, 1, product.Quantity)
	assert.False(t, product.Done)
	assert.Equal(t, entity.UnitCount, product.Unit)
	assert.Equal(t, 0.0, product.SortWeight)

	second, err := d.CreateProduct(ctx, token, aisleID, "Butter")
	require.NoError(t, err)
	assert.Equal(t, 1.0, second.SortWeight)
}

func TestEditProduct(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	token, _ := register(t, d, "alice")
	storeID, aisleID := seedAisle(t, d, token)

	product, err := d.CreateProduct(ctx, token, aisleID, "Milk")
	require.NoError(t, err)

	qty := 3
	unit := entity.UnitMilliliter
	done := true
	err = d.EditProduct(ctx, token, product.ID, entity.EditProduct{
		Quantity: &qty,
		Unit:     &unit,
		Done:     &done,
	})
	require.NoError(t, err)

	got, err := d.GetStore(ctx, token, storeID)
	require.NoError(t, err)
	require.Len(t, got.Aisles, 1)
	require.Len(t, got.Aisles[0].Products, 1)
	p := got.Aisles[0].Products[0]
	assert.Equal(t, "Milk", p.Name, "untouched field survives a partial edit")
	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, entity.UnitMilliliter, p.Unit)
	assert.True(t, p.Done)
}

func TestProductPermissionDenied(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	tokenA, _ := register(t, d, "alice")
	tokenB, _ := register(t, d, "mallory")
	_, aisleID := seedAisle(t, d, tokenA)

	_, err := d.CreateProduct(ctx, tokenB, aisleID, "Sneaky")
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))

	product, err := d.CreateProduct(ctx, tokenA, aisleID, "Milk")
	require.NoError(t, err)

	done := true
	err = d.EditProduct(ctx, tokenB, product.ID, entity.EditProduct{Done: &done})
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))

	err = d.DeleteProduct(ctx, tokenB, product.ID)
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	d, mem := newTestDB(t)
	token, _ := register(t, d, "alice")
	_, aisleID := seedAisle(t, d, token)

	product, err := d.CreateProduct(ctx, token, aisleID, "Milk")
	require.NoError(t, err)
	require.NoError(t, d.DeleteProduct(ctx, token, product.ID))

	exists, err := mem.Exists(ctx, productKey(product.ID))
	require.NoError(t, err)
	assert.False(t, exists)

	member, err := mem.SIsMember(ctx, productsInAisleKey(aisleID), string(product.ID))
	require.NoError(t, err)
	assert.False(t, member)
}

func TestChangeSortWeights(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	token, _ := register(t, d, "alice")
	storeID, aisleID := seedAisle(t, d, token)

	bakery, err := d.CreateAisle(ctx, token, storeID, "Bakery")
	require.NoError(t, err)
	milk, err := d.CreateProduct(ctx, token, aisleID, "Milk")
	require.NoError(t, err)
	butter, err := d.CreateProduct(ctx, token, aisleID, "Butter")
	require.NoError(t, err)

	err = d.ChangeSortWeights(ctx, token, entity.EditWeight{
		Aisles: []entity.ItemWeight{{ID: string(bakery.ID), SortWeight: -1}},
		Products: []entity.ItemWeight{
			{ID: string(milk.ID), SortWeight: 2.5},
			{ID: string(butter.ID), SortWeight: 0.5},
		},
	})
	require.NoError(t, err)

	got, err := d.GetStore(ctx, token, storeID)
	require.NoError(t, err)
	weights := map[string]float64{}
	for _, a := range got.Aisles {
		weights[a.Name] = a.SortWeight
		for _, p := range a.Products {
			weights[p.Name] = p.SortWeight
		}
	}
	assert.Equal(t, -1.0, weights["Bakery"])
	assert.Equal(t, 2.5, weights["Milk"])
	assert.Equal(t, 0.5, weights["Butter"])
}

func TestChangeSortWeightsEmptyBatch(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	token, _ := register(t, d, "alice")

	err := d.ChangeSortWeights(ctx, token, entity.EditWeight{})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidParams, apperr.CodeOf(err))
}

func TestChangeSortWeightsForeignItemAbortsBatch(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)
	tokenA, _ := register(t, d, "alice")
	tokenB, _ := register(t, d, "mallory")

	storeA, aisleA := seedAisle(t, d, tokenA)
	_, aisleB := seedAisle(t, d, tokenB)

	err := d.ChangeSortWeights(ctx, tokenA, entity.EditWeight{
		Aisles: []entity.ItemWeight{
			{ID: string(aisleA), SortWeight: 9},
			{ID: string(aisleB), SortWeight: 9},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodePermissionDenied, apperr.CodeOf(err))

	// alice's own aisle kept its weight: the batch is all-or-nothing
	got, err := d.GetStore(ctx, tokenA, storeA)
	require.NoError(t, err)
	require.Len(t, got.Aisles, 1)
	assert.Equal(t, 0.0, got.Aisles[0].SortWeight)
}
