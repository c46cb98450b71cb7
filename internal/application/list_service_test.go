package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/pkg/apperr"
)

func TestGetStoreReturnsSortedTree(t *testing.T) {
	ctx := context.Background()
	accounts, lists := newServices(t)
	token, _, err := accounts.Register(ctx, "alice", "alice@example.com", "s3cretpassword")
	require.NoError(t, err)

	store, err := lists.CreateStore(ctx, token, "Shop")
	require.NoError(t, err)
	dairy, err := lists.CreateAisle(ctx, token, store.ID, "Dairy")
	require.NoError(t, err)
	bakery, err := lists.CreateAisle(ctx, token, store.ID, "Bakery")
	require.NoError(t, err)

	_, err = lists.CreateProduct(ctx, token, dairy.ID, "Milk")
	require.NoError(t, err)
	_, err = lists.CreateProduct(ctx, token, dairy.ID, "Butter")
	require.NoError(t, err)

	// move bakery before dairy
	err = lists.ChangeSortWeight(ctx, token, entity.EditWeight{
		Aisles: []entity.ItemWeight{{ID: string(bakery.ID), SortWeight: -1}},
	})
	require.NoError(t, err)

	got, err := lists.GetStore(ctx, token, store.ID)
	require.NoError(t, err)
	require.Len(t, got.Aisles, 2)
	assert.Equal(t, "Bakery", got.Aisles[0].Name)
	assert.Equal(t, "Dairy", got.Aisles[1].Name)

	require.Len(t, got.Aisles[1].Products, 2)
	assert.Equal(t, "Milk", got.Aisles[1].Products[0].Name, "weights follow creation order")
	assert.Equal(t, "Butter", got.Aisles[1].Products[1].Name)
}

func TestEditProductEmptyPatchRejectedBeforeSession(t *testing.T) {
	ctx := context.Background()
	_, lists := newServices(t)

	// even a bogus token gets the validation error first
	err := lists.EditProduct(ctx, "bogus", "some-product", entity.EditProduct{})
	assert.Equal(t, apperr.CodeInvalidParams, apperr.CodeOf(err))
}

func TestChangeSortWeightEmptyBatchRejected(t *testing.T) {
	ctx := context.Background()
	_, lists := newServices(t)

	err := lists.ChangeSortWeight(ctx, "bogus", entity.EditWeight{})
	assert.Equal(t, apperr.CodeInvalidParams, apperr.CodeOf(err))
}

func TestListOperationsRequireSession(t *testing.T) {
	ctx := context.Background()
	_, lists := newServices(t)

	_, err := lists.CreateStore(ctx, "bogus", "Shop")
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))

	_, err = lists.ListStores(ctx, "bogus")
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))

	err = lists.DeleteStore(ctx, "bogus", "some-store")
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}
