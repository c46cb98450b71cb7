package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groceryhub/grocery-api/pkg/apperr"
)

func TestRegisterUserWritesRecordAndDirectory(t *testing.T) {
	ctx := context.Background()
	d, mem := newTestDB(t)

	userID, err := d.RegisterUser(ctx, "Alice", "alice@example.com", "s3cretpassword")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	// directory entry is lowercased
	id, err := mem.HGet(ctx, usersKey, "alice")
	require.NoError(t, err)
	assert.Equal(t, string(userID), id)

	// record keeps the display casing, credentials are hashed
	name, err := mem.HGet(ctx, userKey(userID), userFieldName)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	pwd, err := mem.HGet(ctx, userKey(userID), userFieldPassword)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpassword", pwd)

	mail, err := mem.HGet(ctx, userKey(userID), userFieldMail)
	require.NoError(t, err)
	assert.NotEqual(t, "alice@example.com", mail)
}

func TestRegisterUserUsernameTakenCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)

	_, err := d.RegisterUser(ctx, "Bob", "bob@example.com", "s3cretpassword")
	require.NoError(t, err)

	_, err = d.RegisterUser(ctx, "bOB", "other@example.com", "s3cretpassword")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUsernameTaken, apperr.CodeOf(err))
}

func TestVerifyPassword(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDB(t)

	userID, err := d.RegisterUser(ctx, "Carol", "carol@example.com", "s3cretpassword")
	require.NoError(t, err)

	got, err := d.VerifyPassword(ctx, "CAROL", "s3cretpassword")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = d.VerifyPassword(ctx, "carol", "wrongpassword")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidCredentials, apperr.CodeOf(err))

	// unknown user looks exactly like a bad password
	_, err = d.VerifyPassword(ctx, "nobody", "s3cretpassword")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidCredentials, apperr.CodeOf(err))
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	d, mem := newTestDB(t)
	token, userID := register(t, d, "dave")

	store, err := d.CreateStore(ctx, token, "Corner Shop")
	require.NoError(t, err)
	aisle, err := d.CreateAisle(ctx, token, store.ID, "Dairy")
	require.NoError(t, err)
	product, err := d.CreateProduct(ctx, token, aisle.ID, "Milk")
	require.NoError(t, err)

	require.NoError(t, d.DeleteUser(ctx, token))

	// username is free again
	_, err = mem.HGet(ctx, usersKey, "dave")
	assert.Error(t, err)

	// record and owned tree are gone
	for _, key := range []string{
		userKey(userID),
		storeKey(store.ID),
		aisleKey(aisle.ID),
		productKey(product.ID),
	} {
		exists, err := mem.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists, "key %q should be gone", key)
	}

	// sessions are revoked
	err = d.ValidateSession(ctx, token)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}
