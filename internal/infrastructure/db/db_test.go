package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
	"github.com/groceryhub/grocery-api/pkg/helpers"
)

func newTestDB(t *testing.T) (*DB, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return New(mem), mem
}

// register creates an account and opens a session for it.
func register(t *testing.T, d *DB, username string) (string, entity.UserID) {
	t.Helper()
	ctx := context.Background()
	userID, err := d.RegisterUser(ctx, username, username+"@example.com", "correct horse battery")
	require.NoError(t, err)
	token, err := helpers.NewToken()
	require.NoError(t, err)
	require.NoError(t, d.CreateSession(ctx, token, userID))
	return token, userID
}
